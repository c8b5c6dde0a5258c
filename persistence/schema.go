// Package persistence implements spec.md section 4.9: atomic load/save
// of the equipment journal as YAML, via FsOps.GuardFileUpdate. The wire
// schema round-trips every enum, the UndoableCommand tagged union, both
// Requirement variants, and the status fields (spec.md section 6), with
// one exception: a PackageRequirement's platform table is not stored, so
// loaded package records carry a nil table.
//
// Grounded on golang-dep's Lock/manifest TOML (de)serialization shape
// (explicit wire structs separate from the in-memory domain types),
// adapted here to YAML via gopkg.in/yaml.v3 since spec.md section 6 calls
// for "YAML or equivalent" and yaml.v3 is the serialization library the
// retrieved pack's config-bearing repos (e.g. silexa) reach for.
package persistence

// fileWire is the top-level shape of equipment.yaml.
type fileWire struct {
	Meta map[string]moduleMetaWire `yaml:"meta"`
}

type moduleMetaWire struct {
	ModuleName           string                 `yaml:"module_name"`
	Status               string                 `yaml:"status"`
	PackageInstallations []packageInstallWire   `yaml:"package_installations"`
	GitRepoInstallations []gitrepoInstallWire   `yaml:"gitrepo_installations"`
	Transactions         []transactionWire      `yaml:"transactions"`
}

type packageInstallWire struct {
	Package      string `yaml:"package"`
	Version      string `yaml:"version"`
	Command      string `yaml:"command"`
	Backend      string `yaml:"backend"`
	UsedExisting bool   `yaml:"used_existing"`
}

type gitrepoInstallWire struct {
	URL          string `yaml:"url"`
	Path         string `yaml:"path"`
	Branch       string `yaml:"branch"`
	CommitID     string `yaml:"commit_id"`
	Depth        int    `yaml:"depth"`
	Submodules   bool   `yaml:"submodules"`
	UsedExisting bool   `yaml:"used_existing"`
}

type transactionWire struct {
	CommitID       string        `yaml:"commit_id"`
	Status         string        `yaml:"status"`
	RollbackCursor int           `yaml:"rollback_cursor"`
	Records        []commandWire `yaml:"records"`
}

// commandWire carries every variant's fields as optional members; Kind
// is the wire discriminator. Unused fields for a given Kind are simply
// omitted on write (omitempty) and ignored on read.
type commandWire struct {
	Kind string `yaml:"kind"`

	Src string `yaml:"src,omitempty"`
	Dst string `yaml:"dst,omitempty"`

	Path    string `yaml:"path,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
	Repl    string `yaml:"repl,omitempty"`

	VarName string `yaml:"var_name,omitempty"`
	Value   string `yaml:"value,omitempty"`

	NewPath string `yaml:"new_path,omitempty"`
	RcPath  string `yaml:"rc_path,omitempty"`

	Shell string `yaml:"shell,omitempty"`

	// Bookkeeping filled in at Exec time.
	RealDst          string `yaml:"real_dst,omitempty"`
	BackupPath       string `yaml:"backup_path,omitempty"`
	LastExistPath    string `yaml:"last_exist_path,omitempty"`
	Moved            bool   `yaml:"moved,omitempty"`
	ReplacedLine     string `yaml:"replaced_line,omitempty"`
	HadPrevious      bool   `yaml:"had_previous,omitempty"`
	PreviousValue    string `yaml:"previous_value,omitempty"`
	Changed          bool   `yaml:"changed,omitempty"`
	Noop             bool   `yaml:"noop,omitempty"`
	ModifiedExisting bool   `yaml:"modified_existing,omitempty"`
	InsertedNewLine  bool   `yaml:"inserted_new_line,omitempty"`
	LineIndex        int    `yaml:"line_index,omitempty"`
	OriginalLine     string `yaml:"original_line,omitempty"`
	OriginShell      string `yaml:"origin_shell,omitempty"`
}
