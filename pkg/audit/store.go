package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/shiplog/pkg/db"
)

// Record is one row of the audit_messages table.
type Record struct {
	Facility  int       `gorm:"column:facility"`
	Severity  int       `gorm:"column:severity"`
	Timestamp time.Time `gorm:"column:timestamp"`
	Hostname  string    `gorm:"column:hostname"`
	Appname   string    `gorm:"column:appname"`
	Procid    string    `gorm:"column:procid"`
	Msgid     string    `gorm:"column:msgid"`
	Sdata     string    `gorm:"column:sdata"`
	Message   string    `gorm:"column:message"`
}

func (Record) TableName() string {
	return "audit_messages"
}

// newRecord flattens event for storage; structured data is kept as JSON.
func newRecord(event Event, at time.Time) (Record, error) {
	sdata, err := json.Marshal(event.StructuredData())
	if err != nil {
		return Record{}, fmt.Errorf("encode structured data: %w", err)
	}
	hostname, _ := os.Hostname()

	return Record{
		Facility:  event.Facility(),
		Severity:  int(event.Severity()),
		Timestamp: at.UTC(),
		Hostname:  hostname,
		Appname:   appName,
		Procid:    strconv.Itoa(os.Getpid()),
		Msgid:     event.MessageID(),
		Sdata:     string(sdata),
		Message:   event.Message(),
	}, nil
}

// Store persists audit events.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore connects to SHIPLOG_AUDIT_DATABASE_URL. It returns nil, nil when
// the variable is unset.
func NewStore() (*Store, error) {
	dbURL := os.Getenv("SHIPLOG_AUDIT_DATABASE_URL")
	if dbURL == "" {
		return nil, nil
	}

	gormDB, err := db.Connect(db.Config{URL: dbURL})
	if err != nil {
		return nil, err
	}
	return NewStoreWithDB(gormDB), nil
}

// NewStoreWithDB creates a store on an existing connection.
func NewStoreWithDB(gormDB *gorm.DB) *Store {
	return &Store{db: gormDB, now: time.Now}
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save inserts event into audit_messages.
func (s *Store) Save(event Event) error {
	if s.db == nil {
		return nil
	}

	record, err := newRecord(event, s.now())
	if err != nil {
		return err
	}
	return s.db.Create(&record).Error
}
