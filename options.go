package canvas

// Option configures a Context during creation.
//
// Example:
//
//	// Defaults: 2px strokes, even-odd fill, device-only render matrix
//	ctx, err := canvas.NewContext(display)
//
//	// Thicker strokes with round joins, transforms applied on the GPU
//	ctx, err := canvas.NewContext(display,
//	    canvas.WithStrokeOptions(canvas.DefaultStrokeOptions().WithWidth(4).WithJoin(canvas.LineJoinRound)),
//	    canvas.WithUserTransform(true),
//	)
type Option func(*options)

// options holds optional configuration for Context creation.
type options struct {
	tessellator   Tessellator
	stroke        StrokeOptions
	fill          FillOptions
	userTransform bool
	shader        ShaderSource
}

// defaultOptions returns the default context options.
func defaultOptions() options {
	return options{
		tessellator:   nil, // Will be set to NewTessellator() if nil
		stroke:        DefaultStrokeOptions(),
		fill:          DefaultFillOptions(),
		userTransform: false,
		shader:        DefaultShader(),
	}
}

// WithTessellator sets a custom tessellator for the Context.
// Use this for dependency injection of alternative tessellation strategies.
func WithTessellator(t Tessellator) Option {
	return func(o *options) {
		o.tessellator = t
	}
}

// WithStrokeOptions replaces the stroke options.
func WithStrokeOptions(s StrokeOptions) Option {
	return func(o *options) {
		o.stroke = s
	}
}

// WithFillOptions replaces the fill options.
func WithFillOptions(f FillOptions) Option {
	return func(o *options) {
		o.fill = f
	}
}

// WithStrokeWidth sets the stroke width, keeping the other stroke options.
func WithStrokeWidth(w float64) Option {
	return func(o *options) {
		o.stroke.Width = w
	}
}

// WithTolerance sets the tessellation tolerance for both strokes and fills.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.stroke.Tolerance = tol
		o.fill.Tolerance = tol
	}
}

// WithUserTransform controls whether the current transform is part of the
// render matrix.
//
// By default (false) the render matrix only maps pixels to device
// coordinates and the transform stack is bookkeeping for the caller.
// With true, every draw uses device * current transform, so Rotate, Scale
// and Translate move what is drawn.
func WithUserTransform(enabled bool) Option {
	return func(o *options) {
		o.userTransform = enabled
	}
}

// WithShader replaces the shader program. The shader must follow the
// binding layout documented on ShaderSource.
func WithShader(src ShaderSource) Option {
	return func(o *options) {
		o.shader = src
	}
}
