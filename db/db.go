package db

import (
	"log"

	"savboard/config"
	"savboard/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

var conf config.Configuration

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

// Connect abre a conexão com o DB e migra o schema.
// O default é sqlite3 em memória: a coleção de registros vive só durante a
// sessão, que é exatamente o modelo do dashboard (um upload por vez, reset a
// cada novo arquivo). Postgres fica disponível para quem quiser durabilidade.
func Connect() (*gorm.DB, error) {
	database := conf.Database
	if database == "" {
		database = "sqlite3"
	}

	var (
		db  *gorm.DB
		err error
	)

	if database == "postgres" || database == "postgresql" {
		log.Println("Utilizando conexão com o postgresql...")
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass
		db, err = gorm.Open("postgres", path)
	} else {
		name := conf.DbName
		if name == "" || name == ":memory:" {
			// cache=shared: o pool inteiro enxerga o mesmo banco em memória
			name = "file::memory:?cache=shared"
		}
		log.Println("Utilizando conexão com o sqlite3...")
		db, err = gorm.Open("sqlite3", name)
	}

	if err != nil {
		log.Println("Got error when connect database, the error is: " + err.Error())
		return nil, err
	}

	db.AutoMigrate(&models.Record{})

	return db, nil
}

// Open is the test hook: a throwaway in-memory database with the schema
// migrated, independent of the package-level configuration. Each call gets
// its own named in-memory database so tests stay isolated.
func Open() (*gorm.DB, error) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.AutoMigrate(&models.Record{})
	return db, nil
}
