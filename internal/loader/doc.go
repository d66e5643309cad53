// Package loader turns catalog source files into a *catalog.Catalog.
//
// Line record files (.csv, .txt, or any extension other than .hcl) hold one
// course per line as "code,title[,prereqCode]*". Blank lines and lines
// starting with '#' are ignored.
//
// HCL files (.hcl) hold one block per course:
//
//	course "CSCI200" {
//	  title   = "Data Structures"
//	  prereqs = ["CSCI100", "MATH101"]
//	}
//
// Invalid records are skipped and reported, never fatal. A source that
// cannot be opened, read or parsed fails the whole load so the caller can
// keep its previous catalog.
package loader
