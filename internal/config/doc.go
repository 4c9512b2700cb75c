// Package config loads dynadoc configuration files.
//
// A configuration file is YAML:
//
//	version: "1"
//	style: pep8
//	preserve: true
//	notify: error
//	introspection:
//	  targets: [class, function]
//	  class:
//	    inheritance: true
//	    scan_attributes: true
//	  module:
//	    scan_attributes: true
//	    honor_exports: true
//	  visibility_order: markers-first
//	fragments:
//	  notes: Shared notes appended by findex markers.
//
// Every field is optional. Build turns a File into the collaborators an
// assemble.Assembler needs.
package config
