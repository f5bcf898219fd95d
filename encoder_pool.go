package deflog

import (
	"sync"
)

func NewEncoderPool() EncoderPool {
	return &encoderPool{
		pool: sync.Pool{
			New: func() any {
				return new(Encoder)
			},
		},
	}
}

type EncoderPool interface {
	Acquire() *Encoder
	Release(e *Encoder)
}

type encoderPool struct {
	pool sync.Pool
}

func (p *encoderPool) Acquire() *Encoder {
	return p.pool.Get().(*Encoder)
}

func (p *encoderPool) Release(e *Encoder) {
	e.Reset()
	p.pool.Put(e)
}
