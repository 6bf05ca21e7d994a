package plan

// Accumulator groups view classes by output filename, keeping the order
// in which files were first contributed to.
type Accumulator struct {
	files  []*FileMetadata
	byName map[string]*FileMetadata
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{byName: map[string]*FileMetadata{}}
}

// Add attaches a view to the file with the same filename, creating the
// file on first use. A later contributor sets the mapper directory when
// the first one had none.
func (a *Accumulator) Add(v View) *FileMetadata {
	fm, ok := a.byName[v.Filename]
	if !ok {
		fm = &FileMetadata{
			Filename:   v.Filename,
			BasePath:   v.Class.BaseNamePath,
			MapperPath: v.MapperDir,
		}
		a.byName[v.Filename] = fm
		a.files = append(a.files, fm)
	}

	if fm.MapperPath == "" {
		fm.MapperPath = v.MapperDir
	}

	fm.Classes = append(fm.Classes, v.Class)

	return fm
}

// Files returns the accumulated files in first-contribution order.
func (a *Accumulator) Files() []*FileMetadata {
	return a.files
}
