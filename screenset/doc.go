// Package screenset loads HCL set manifests: named collections of
// screen templates with seed state and an entry point.
//
// A manifest names each screen, the markup file it compiles from, and
// optionally a seed block of literal key/value pairs for its store:
//
//	entry = "general"
//
//	screen "general" {
//	  source = "general.mml"
//	  title  = "General Settings"
//	  seed {
//	    bgm_volume = 40
//	    lhb        = "on"
//	  }
//	}
//
// Loading is forgiving per screen: a template that fails to compile or
// a seed that is not literal scalars marks that one screen broken and
// leaves the rest of the set usable.
package screenset
