// Package project persists the engineering project tree as YAML.
//
// A project file lists the top-level nodes of the project with their
// children nested below them:
//
//	version: "1"
//	name: Plant
//	nodes:
//	  - name: CommDrivers
//	    class: folder
//	    children:
//	      - name: Tags
//	        class: tag_structure
//	        children:
//	          - name: Speed
//	            class: tag
//	            data_type: Int32
//	            driver:
//	              kind: S7TCP
//	              fields:
//	                MemoryArea: DataBlock
//	                BlockNumber: "10"
//
// Driver properties use the same textual form as the tag table, so a value
// that survives an export also survives a save.
package project
