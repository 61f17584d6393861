package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type uniqueThing struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

func TestNewGormDB_SQLite(t *testing.T) {
	db, err := NewGormDB(GormConfig{Driver: DriverSQLite, DSN: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, db.AutoMigrate(&uniqueThing{}))
	require.NoError(t, db.Create(&uniqueThing{Name: "a"}).Error)

	err = db.Create(&uniqueThing{Name: "a"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestNewGormDB_Errors(t *testing.T) {
	_, err := NewGormDB(GormConfig{Driver: DriverSQLite})
	assert.Error(t, err)

	_, err = NewGormDB(GormConfig{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)
}
