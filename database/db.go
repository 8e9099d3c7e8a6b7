package database

import (
	"database/sql"
	"log"
	"sync"

	"github.com/sireline/sireline/cache"

	"github.com/sireline/sireline/config"
)

// Declare a package-level variable to hold the singleton instance.
// Ensure the instance is not accessible outside the package.
var instance *Datasource
var once sync.Once

type Datasource struct {
	Conn  *sql.DB
	Cache cache.Cache
}

func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := GetDBConnection(configuration)
	if err != nil {
		return nil, err
	}
	return con, nil
}

// GetDBConnection provides a global access point to the instance and initializes it if it's not already.
func GetDBConnection(configuration *config.Configuration) (*Datasource, error) {
	var err error
	once.Do(func() {
		con, errConn := ConnectDB(configuration.DataSource.Dns)
		if errConn != nil {
			err = errConn
			return
		}
		newCache, errCache := cache.NewCache()
		if errCache != nil {
			log.Printf("cache unavailable, dog lookups will go to the database: %v", errCache)
		}
		instance = &Datasource{Conn: con, Cache: newCache}
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func ConnectDB(dns string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		log.Printf("database Connection error ❌: %v", err)
		return nil, err
	}
	err = createDogTable(db)
	if err != nil {
		return nil, err
	}
	err = createMatchRequestTable(db)
	if err != nil {
		return nil, err
	}
	err = createMatchOutcomeTable(db)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// createDogTable creates a PostgreSQL table for the Dog struct
func createDogTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS dogs (
			id SERIAL PRIMARY KEY,
			dog_id TEXT NOT NULL UNIQUE,
			owner_user_id TEXT NOT NULL,
			name TEXT,
			breed TEXT,
			gender TEXT NOT NULL DEFAULT 'unknown',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			meta_data JSONB
		)
	`)
	log.Println(err)
	return err
}

// createMatchRequestTable creates a PostgreSQL table for the MatchRequest struct
func createMatchRequestTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS match_requests (
			id SERIAL PRIMARY KEY,
			match_id TEXT NOT NULL UNIQUE,
			contact_id TEXT NOT NULL,
			status TEXT NOT NULL,
			requester_user_id TEXT NOT NULL,
			requested_user_id TEXT NOT NULL,
			requester_dog_id TEXT NOT NULL REFERENCES dogs(dog_id),
			requested_dog_id TEXT NOT NULL REFERENCES dogs(dog_id),
			requester_notes TEXT,
			responder_notes TEXT,
			requested_at TIMESTAMP NOT NULL DEFAULT NOW(),
			accepted_at TIMESTAMP,
			declined_at TIMESTAMP,
			cancelled_at TIMESTAMP,
			awaiting_confirmation_at TIMESTAMP,
			completed_at TIMESTAMP,
			last_status_changed_at TIMESTAMP
		)
	`)
	log.Println(err)
	return err
}

// createMatchOutcomeTable creates a PostgreSQL table for the MatchOutcome struct.
// The UNIQUE constraint on match_id enforces one outcome per match.
func createMatchOutcomeTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS match_outcomes (
			id SERIAL PRIMARY KEY,
			outcome_id TEXT NOT NULL UNIQUE,
			match_id TEXT NOT NULL UNIQUE REFERENCES match_requests(match_id),
			outcome TEXT NOT NULL CHECK (outcome IN ('success', 'failed', 'no_show')),
			litter_size INTEGER NOT NULL DEFAULT 0 CHECK (litter_size >= 0),
			notes TEXT,
			verified_by_user_id TEXT NOT NULL,
			verified_by_dog_id TEXT NOT NULL,
			verified_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	log.Println(err)
	return err
}
