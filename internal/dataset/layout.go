package dataset

import "slices"

const (
	FamilyDCASE = "DCASE"
	FamilyMIMII = "MIMII"
)

// DCASELayout enumerates the DCASE tree:
// base/DCASE/{year}/{dataset-class}/{machine}/{split}/.
type DCASELayout struct {
	Family string
	Years  []string
	// DevOnlyYears only ship the first entry of DatasetClasses.
	DevOnlyYears   []string
	DatasetClasses []string
	Splits         []string
	// SkipSplits lists, per dataset class, splits that do not exist on disk.
	SkipSplits map[string][]string
}

// MIMIILayout enumerates the MIMII tree:
// base/MIMII/{decibel}/{machine}/{id}/{class}/.
type MIMIILayout struct {
	Family   string
	Decibels []string
	IDs      []string
	// Classes is walked in order and stops at ClassUnknown, which never
	// exists as a directory.
	Classes []string
}

// Layout carries every enumeration the Walker consumes.
type Layout struct {
	DCASE        DCASELayout
	MIMII        MIMIILayout
	MachineTypes []string
}

// DefaultLayout returns the enumerations of the published DCASE 2020-2024
// and MIMII releases.
func DefaultLayout() Layout {
	return Layout{
		DCASE: DCASELayout{
			Family:         FamilyDCASE,
			Years:          []string{"2020", "2021", "2022", "2023", "2024"},
			DevOnlyYears:   []string{"2023", "2024"},
			DatasetClasses: []string{"dev", "eval", "add"},
			Splits:         []string{"train", "test"},
			SkipSplits: map[string][]string{
				"eval": {"train"},
				"add":  {"test"},
			},
		},
		MIMII: MIMIILayout{
			Family:   FamilyMIMII,
			Decibels: []string{"data_-6_db", "data_0_db", "data_6_db"},
			IDs:      []string{"id_00", "id_02", "id_04", "id_06"},
			Classes:  []string{string(ClassNormal), string(ClassAbnormal), string(ClassUnknown)},
		},
		MachineTypes: []string{"fan", "valve"},
	}
}

func (l DCASELayout) devOnly(year string) bool {
	return slices.Contains(l.DevOnlyYears, year)
}

func (l DCASELayout) skipSplit(datasetClass, split string) bool {
	return slices.Contains(l.SkipSplits[datasetClass], split)
}

// HasMachine reports whether machine is one of the configured machine types.
func (l Layout) HasMachine(machine string) bool {
	return slices.Contains(l.MachineTypes, machine)
}
