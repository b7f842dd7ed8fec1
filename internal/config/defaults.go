package config

const (
	defaultSuffix         = "_compressed"
	defaultMaxCompression = 0.99
	defaultMinDimension   = 2160
	defaultJPEGQuality    = 95
	defaultVideoCodec     = "libx265"
	defaultVideoCRF       = 24
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Run: Run{
			Workers:        0,
			Suffix:         defaultSuffix,
			MaxCompression: defaultMaxCompression,
		},
		Images: Images{
			MinDimension: defaultMinDimension,
			JPEGQuality:  defaultJPEGQuality,
		},
		Video: Video{
			Codec:         defaultVideoCodec,
			CRF:           defaultVideoCRF,
			SkipSameCodec: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
