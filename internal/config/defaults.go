package config

const (
	defaultDataDir   = "data/"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
	defaultRuleSet   = "reference"
	defaultDCASE     = "DCASE"
	defaultMIMII     = "MIMII"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Dataset: Dataset{
			MachineTypes: []string{"fan", "valve"},
			RuleSet:      defaultRuleSet,
			DCASE: DCASE{
				Family:         defaultDCASE,
				Years:          []string{"2020", "2021", "2022", "2023", "2024"},
				DevOnlyYears:   []string{"2023", "2024"},
				DatasetClasses: []string{"dev", "eval", "add"},
				Splits:         []string{"train", "test"},
				SkipSplits: map[string][]string{
					"eval": {"train"},
					"add":  {"test"},
				},
			},
			MIMII: MIMII{
				Family:   defaultMIMII,
				Decibels: []string{"data_-6_db", "data_0_db", "data_6_db"},
				IDs:      []string{"id_00", "id_02", "id_04", "id_06"},
				Classes:  []string{"normal", "abnormal", "unknown"},
			},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
