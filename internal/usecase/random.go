package usecase

import (
	"math/rand/v2"
	"sync/atomic"
)

// RandFactory создает генератор случайных чисел для одной операции.
// *rand.Rand не потокобезопасен, поэтому каждый запрос получает свой.
type RandFactory func() *rand.Rand

// NewRandFactory возвращает фабрику с генераторами от глобального источника
func NewRandFactory() RandFactory {
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// NewSeededRandFactory возвращает воспроизводимую последовательность генераторов
func NewSeededRandFactory(seed uint64) RandFactory {
	var n atomic.Uint64
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(seed, n.Add(1)))
	}
}
