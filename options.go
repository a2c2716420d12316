package shaper

import (
	"math"

	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/shaper/engine"
	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/runs"
)

// Option configures a Shaper during creation.
//
// Example:
//
//	// Shaper with a fixed fallback list
//	s := shaper.Make(shaper.WithFontManager(font.NewCollection(regular, emoji)))
type Option func(*options)

// options holds optional configuration for Shaper creation.
type options struct {
	fontMgr  font.Manager
	engine   engine.Engine
	language xlanguage.Tag
}

// defaultShaperOptions returns the default shaper options.
func defaultShaperOptions() options {
	return options{
		fontMgr:  nil, // font.Default() per call
		engine:   nil, // shared HarfBuzz engine
		language: runs.DefaultLanguage,
	}
}

// WithFontManager sets the font manager used for fallback.
// A nil manager selects the process-wide default.
func WithFontManager(m font.Manager) Option {
	return func(o *options) {
		o.fontMgr = m
	}
}

// WithEngine sets the shaping engine. It has no effect on the Primitive
// and PlatformNative strategies, which bring their own.
func WithEngine(e engine.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithLanguage sets the language tagging text shaped with default
// iterators.
func WithLanguage(tag xlanguage.Tag) Option {
	return func(o *options) {
		o.language = tag
	}
}

// ShapeOption configures a single Shape call.
//
// Example:
//
//	blob, err := s.Shape(text, f, shaper.WithWidth(320), shaper.WithOffset(10, 10))
type ShapeOption func(*shapeOptions)

// shapeOptions holds optional configuration for a Shape call.
type shapeOptions struct {
	features  []Feature
	direction runs.Direction
	width     float64
	offset    Point
	fontMgr   font.Manager
	hasMgr    bool
}

// defaultShapeOptions returns the default shape options.
func defaultShapeOptions() shapeOptions {
	return shapeOptions{
		direction: runs.LeftToRight,
		width:     math.Inf(1),
	}
}

// WithFeatures adds OpenType features.
func WithFeatures(features ...Feature) ShapeOption {
	return func(o *shapeOptions) {
		o.features = append(o.features, features...)
	}
}

// WithDirection sets the base paragraph direction.
func WithDirection(d runs.Direction) ShapeOption {
	return func(o *shapeOptions) {
		o.direction = d
	}
}

// WithRightToLeft sets a right-to-left base direction when rtl is true.
func WithRightToLeft(rtl bool) ShapeOption {
	return func(o *shapeOptions) {
		if rtl {
			o.direction = runs.RightToLeft
		} else {
			o.direction = runs.LeftToRight
		}
	}
}

// WithWidth sets the wrap width. Zero, negative or infinite widths
// disable soft wrapping.
func WithWidth(width float64) ShapeOption {
	return func(o *shapeOptions) {
		o.width = width
	}
}

// WithOffset sets the origin of the first line for Shape.
func WithOffset(x, y float64) ShapeOption {
	return func(o *shapeOptions) {
		o.offset = Pt(x, y)
	}
}

// WithShapeFontManager overrides the shaper's font manager for one call.
// A nil manager selects the process-wide default.
func WithShapeFontManager(m font.Manager) ShapeOption {
	return func(o *shapeOptions) {
		o.fontMgr = m
		o.hasMgr = true
	}
}
