package workpool

// Config defines sizing options for a worker pool.
type Config struct {
	// Workers is the number of goroutines executing submitted tasks.
	Workers int `yaml:"workers" validate:"min=1" default:"5"`

	// QueueCapacity is the maximum number of tasks waiting for a free worker.
	// Submissions block once the queue is full.
	QueueCapacity int `yaml:"queue_capacity" validate:"min=1" default:"500"`
}

const (
	defaultWorkers       = 5
	defaultQueueCapacity = 500
)

// withDefaults fills in zero values so the pool stays usable when
// constructed without cfgloader.
func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = defaultQueueCapacity
	}
	return c
}
