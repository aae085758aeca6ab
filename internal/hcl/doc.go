// Package hcl is the HCL implementation of the config.Loader interface.
//
// A project manifest is a single flat HCL file. Attribute values are
// expressions evaluated against a scope exposing `mode` and `root`, so a
// manifest can vary paths by build mode:
//
//	output_dir = "dist-${mode}"
//	static_dir = "static"
package hcl
