// Package uiconfig loads widget configurations and per-form field overrides
// from JSON or YAML files. A document may hold named widget configurations
// under "configs" (each starting from widgets.DefaultConfig) and form
// overrides under "forms":
//
//	configs:
//	  bootstrap5:
//	    containerClass: mb-3
//	    inputClass: form-control
//	forms:
//	  SignupForm:
//	    order: [email, password]
//	    fields:
//	      email:
//	        label: Work email
//	        placeholder: you@example.com
//
// Stores are immutable after loading and safe for concurrent readers.
package uiconfig
