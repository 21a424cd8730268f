/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package gormstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suparena/entitycrud/errors"
	"github.com/suparena/entitycrud/storagemodels"
)

// Store persists entities of struct type T in the table gorm maps T to.
type Store[T storagemodels.Entity[K], K comparable] struct {
	db        *gorm.DB
	table     string
	keyColumn string
	columns   map[string]string

	// generatedKey is set when the database assigns the key on insert.
	generatedKey bool
}

// New builds a Store for T. T's gorm model must declare a primary key.
func New[T storagemodels.Entity[K], K comparable](db *gorm.DB) (*Store[T, K], error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("failed parsing model: %w", err)
	}

	primary := stmt.Schema.PrioritizedPrimaryField
	if primary == nil {
		return nil, fmt.Errorf("model %s has no primary key", stmt.Schema.Name)
	}

	columns := make(map[string]string, 2*len(stmt.Schema.Fields))
	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" {
			continue
		}
		columns[field.DBName] = field.DBName
		columns[field.Name] = field.DBName
		columns[strings.ToLower(field.Name)] = field.DBName
	}

	return &Store[T, K]{
		db:           db,
		table:        stmt.Schema.Table,
		keyColumn:    primary.DBName,
		columns:      columns,
		generatedKey: primary.AutoIncrement || primary.HasDefaultValue,
	}, nil
}

// Schema describes T's table. Every column is addressable by its column
// name, its Go field name and the lower-cased field name.
func (s *Store[T, K]) Schema() storagemodels.Schema {
	columns := make(map[string]string, len(s.columns))
	for k, v := range s.columns {
		columns[k] = v
	}
	return storagemodels.Schema{Table: s.table, Key: s.keyColumn, Columns: columns}
}

// Save inserts entity and returns its primary key, which the database may
// have assigned. An empty key is rejected unless the database generates one.
func (s *Store[T, K]) Save(ctx context.Context, entity T) (any, error) {
	var zero K
	if !s.generatedKey && entity.PrimaryKey() == zero {
		return nil, errors.NewValidationError(s.keyColumn, "primary key is empty")
	}
	if err := s.db.WithContext(ctx).Create(&entity).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.NewAlreadyExistsError(s.table, fmt.Sprint(entity.PrimaryKey()))
		}
		return nil, err
	}
	return entity.PrimaryKey(), nil
}

// Update writes every column of entity to the row with the same key. The
// count is what the driver reports, so on MySQL an unchanged row counts as
// zero unless the DSN sets clientFoundRows=true.
func (s *Store[T, K]) Update(ctx context.Context, entity T) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(new(T)).
		Where(s.keyEquals(entity.PrimaryKey())).
		Select("*").
		Updates(&entity)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Find returns the row stored under key, or nil when there is none.
func (s *Store[T, K]) Find(ctx context.Context, key K) (*T, error) {
	var entity T
	err := s.db.WithContext(ctx).Where(s.keyEquals(key)).Take(&entity).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// List returns every row.
func (s *Store[T, K]) List(ctx context.Context) ([]T, error) {
	var entities []T
	if err := s.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Delete removes the row with entity's key.
func (s *Store[T, K]) Delete(ctx context.Context, entity T) (int64, error) {
	result := s.db.WithContext(ctx).Where(s.keyEquals(entity.PrimaryKey())).Delete(new(T))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ExecuteQuery runs stmt as raw SQL and scans the rows into T.
func (s *Store[T, K]) ExecuteQuery(ctx context.Context, stmt storagemodels.Statement) ([]T, error) {
	var entities []T
	if err := s.db.WithContext(ctx).Raw(stmt.Text, stmt.Args...).Scan(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (s *Store[T, K]) keyEquals(key K) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: s.keyColumn}, Value: key}
}
