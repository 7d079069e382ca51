// Package alarm derives digital alarms from the integer and boolean
// variables of a tag tree, one alarm per bit or per array element.
//
// Boolean scalars raise into the alarms root directly; every other variable
// gets a "{owner}_{variable}_alarms" subfolder. Alarms that already exist are
// never updated: the new candidate is dropped with a warning.
package alarm
