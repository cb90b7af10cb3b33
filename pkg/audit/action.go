package audit

//go:generate go run github.com/dmarkham/enumer -type Action -trimprefix Action -transform lower -json -output action.gen.go

// Action is the write operation an event describes
type Action int

const (
	ActionCreate Action = iota
	ActionImport
	ActionExport
)
