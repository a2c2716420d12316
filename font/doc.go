// Package font provides the font handles consumed by the shaper.
//
// A [Source] is a parsed font file. It is heavyweight and should be shared.
// A [Font] is a lightweight (source, size) pair; it is what runs carry and
// what the shaping engines consume.
//
//	src, err := font.NewSource(goregular.TTF)
//	if err != nil {
//	    return err
//	}
//	f := src.Font(16)
//
// Font fallback is delegated to a [Manager]. [Collection] resolves
// fallback from an explicit ordered list of sources; [System] matches
// installed fonts. [Default] returns the process-wide System manager.
package font
