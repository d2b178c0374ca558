package resalloc

// DefaultDurationSeconds is the wait used when neither a duration nor
// wait-forever is requested.
const DefaultDurationSeconds = 1

type Config struct {
	Memory string // size expression, e.g. "512MB"
	Wait   WaitPolicy
	Stride int
	Units  UnitTable
}

type ConfigFn func(*Config)

func WithConfig(c *Config) ConfigFn {
	return func(config *Config) {
		*config = *c
	}
}

func WithMemory(spec string) ConfigFn {
	return func(c *Config) { c.Memory = spec }
}

func WithWaitPolicy(p WaitPolicy) ConfigFn {
	return func(c *Config) { c.Wait = p }
}

func WithStride(stride int) ConfigFn {
	return func(c *Config) { c.Stride = stride }
}

func WithUnits(units UnitTable) ConfigFn {
	return func(c *Config) { c.Units = units }
}

func createConfig(options []ConfigFn) *Config {
	c := &Config{
		Wait: FixedSeconds(DefaultDurationSeconds),
	}
	for _, f := range options {
		f(c)
	}

	if c.Stride <= 0 {
		c.Stride = DefaultStride
	}
	if c.Units == nil {
		c.Units = DecimalUnits
	}

	return c
}
