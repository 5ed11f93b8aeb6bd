// Package catalog reads a directory of template families.
//
// Layout:
//
//	<templates>/
//	  app/                  family
//	    default/            variant (any directory but examples/)
//	    minimal/            variant
//	    examples/
//	      flowers/          example, applied after the variant
//	    variables.yaml      optional variables schema
//
// variables.yaml declares the values a family expects:
//
//	args:
//	  app_name:
//	    help: Name of the application
//	    required: true
//	    default: ""
//
// Each variable feeds the render context under its own name and the path
// marker derived from it (app_name becomes __APP_NAME__).
package catalog
