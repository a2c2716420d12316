// Package cache provides the bounded LRU cache used for parsed font faces
// and loaded system font files.
//
//	c := cache.New[uint64, *font.Font](32)
//	f, err := c.GetOrLoad(id, func() (*font.Font, error) { return parse(id) })
//
// LRU is safe for concurrent use and must not be copied after creation.
package cache
