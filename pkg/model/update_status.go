package model

//go:generate go run github.com/dmarkham/enumer -type UpdateStatus -trimprefix UpdateStatus -transform snake-upper -json -sql -output update_status.gen.go

// UpdateStatus is the lifecycle stage of an update.
type UpdateStatus int

const (
	UpdateStatusInProgress UpdateStatus = iota
	UpdateStatusLive
	UpdateStatusDeprecated
	UpdateStatusArchived
)
