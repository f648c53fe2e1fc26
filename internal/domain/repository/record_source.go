package repository

import (
	"context"

	"github.com/geoquiz-service/internal/pkg/geo"
)

// RawRecordSource определяет поставщика сырых записей карты для рабочей области
type RawRecordSource interface {
	// Open начинает выборку записей, пересекающих область
	Open(ctx context.Context, area []geo.Point) (RawRecordIterator, error)
}

// RawRecordIterator выдает записи по одной.
// Next возвращает (nil, nil), когда данные закончились.
type RawRecordIterator interface {
	Next(ctx context.Context) ([]string, error)
	Close() error
}
