// Package netsync transmite o estado das entidades do servidor para os
// clientes de renderização.
//
// Formato no fio (protobuf wire):
//
//	Envelope:     1 type (varint)   2 payload (bytes)
//	Frame:        1 tick (varint)   2 updates (EntityUpdate repetido)
//	EntityUpdate: 1 id  2 kind  3 dirty (varint)
//	              4 position  5 rotation  6 scale (bytes, 3x fixed32)
//	              7 label (string)  8 color (fixed32 RGBA)
//	              9 template (string)  10 removed (bool)
//	Status:       1 message (string)  2 tick_rate (fixed32)  3 entities (varint)
package netsync

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"NeroView/shared/sim"

	"github.com/go-gl/mathgl/mgl32"
	"google.golang.org/protobuf/encoding/protowire"
)

// MessageType identifica o conteúdo do envelope.
type MessageType uint32

const (
	MsgFrame  MessageType = 1
	MsgStatus MessageType = 2
)

var ErrUnknownMessage = errors.New("tipo de mensagem desconhecido")

// Envelope embrulha qualquer mensagem enviada pelo websocket.
type Envelope struct {
	Type    MessageType
	Payload []byte
}

// EntityUpdate carrega os campos sujos de uma entidade.
// Só os campos marcados em Dirty são significativos.
type EntityUpdate struct {
	ID       sim.ID
	Kind     sim.Kind
	Dirty    sim.DirtyBits
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Label    string
	Color    color.RGBA
	Template string
	Removed  bool
}

// Frame é o conjunto de atualizações de um tick do servidor.
type Frame struct {
	Tick    uint64
	Updates []EntityUpdate
}

// Status é a mensagem periódica de estado do servidor.
type Status struct {
	Message  string
	TickRate float32
	Entities uint32
}

func (e *Envelope) Marshal() []byte {
	b := make([]byte, 0, len(e.Payload)+8)
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.Type))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Payload)
	return b
}

func (e *Envelope) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			e.Type = MessageType(v)
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			e.Payload = append([]byte(nil), v...)
			return n, nil
		}
		return skipField, nil
	})
}

func (f *Frame) Marshal() []byte {
	b := make([]byte, 0, 64+len(f.Updates)*48)
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, f.Tick)
	for i := range f.Updates {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, f.Updates[i].Marshal())
	}
	return b
}

func (f *Frame) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			f.Tick = v
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			sub, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			var u EntityUpdate
			if err := u.Unmarshal(sub); err != nil {
				return 0, fmt.Errorf("update %d: %w", len(f.Updates), err)
			}
			f.Updates = append(f.Updates, u)
			return n, nil
		}
		return skipField, nil
	})
}

func (u *EntityUpdate) Marshal() []byte {
	b := make([]byte, 0, 64)
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(u.ID))
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(u.Kind))
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(u.Dirty))

	if u.Dirty&sim.DirtyPosition != 0 {
		b = appendVec3(b, 4, u.Position)
	}
	if u.Dirty&sim.DirtyRotation != 0 {
		b = appendVec3(b, 5, u.Rotation)
	}
	if u.Dirty&sim.DirtyScale != 0 {
		b = appendVec3(b, 6, u.Scale)
	}
	if u.Dirty&sim.DirtyLabel != 0 {
		b = protowire.AppendTag(b, 7, protowire.BytesType)
		b = protowire.AppendString(b, u.Label)
	}
	if u.Dirty&sim.DirtyColor != 0 {
		b = protowire.AppendTag(b, 8, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, packColor(u.Color))
	}
	if u.Template != "" {
		b = protowire.AppendTag(b, 9, protowire.BytesType)
		b = protowire.AppendString(b, u.Template)
	}
	if u.Removed {
		b = protowire.AppendTag(b, 10, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	return b
}

func (u *EntityUpdate) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			switch num {
			case 1:
				u.ID = sim.ID(v)
			case 2:
				u.Kind = sim.Kind(v)
			case 3:
				u.Dirty = sim.DirtyBits(v)
			case 10:
				u.Removed = protowire.DecodeBool(v)
			default:
				return skipField, nil
			}
			return n, nil

		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 4, 5, 6:
				vec, err := decodeVec3(v)
				if err != nil {
					return 0, err
				}
				switch num {
				case 4:
					u.Position = vec
				case 5:
					u.Rotation = vec
				case 6:
					u.Scale = vec
				}
			case 7:
				u.Label = string(v)
			case 9:
				u.Template = string(v)
			default:
				return skipField, nil
			}
			return n, nil

		case protowire.Fixed32Type:
			if num != 8 {
				return skipField, nil
			}
			v, n := protowire.ConsumeFixed32(b)
			u.Color = unpackColor(v)
			return n, nil
		}
		return skipField, nil
	})
}

func (s *Status) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, s.Message)
	b = protowire.AppendTag(b, 2, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(s.TickRate))
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.Entities))
	return b
}

func (s *Status) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			s.Message = v
			return n, nil
		case num == 2 && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			s.TickRate = math.Float32frombits(v)
			return n, nil
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			s.Entities = uint32(v)
			return n, nil
		}
		return skipField, nil
	})
}

// skipField indica a walkFields que o campo não foi reconhecido.
const skipField = math.MinInt32

// walkFields percorre os campos de uma mensagem. fn devolve quantos bytes
// consumiu, ou skipField para pular o campo.
func walkFields(data []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		m, err := fn(num, typ, data)
		if err != nil {
			return err
		}
		if m == skipField {
			m = protowire.ConsumeFieldValue(num, typ, data)
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		data = data[m:]
	}
	return nil
}

func appendVec3(b []byte, num protowire.Number, v mgl32.Vec3) []byte {
	var raw [12]byte
	buf := raw[:0]
	for i := 0; i < 3; i++ {
		buf = protowire.AppendFixed32(buf, math.Float32bits(v[i]))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, buf)
}

func decodeVec3(b []byte) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(b) != 12 {
		return v, fmt.Errorf("vetor com %d bytes, esperados 12", len(b))
	}
	for i := 0; i < 3; i++ {
		bits, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return v, protowire.ParseError(n)
		}
		v[i] = math.Float32frombits(bits)
		b = b[n:]
	}
	return v, nil
}

func packColor(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

func unpackColor(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// EncodeFrame embrulha o frame num envelope pronto para envio.
func EncodeFrame(f *Frame) []byte {
	env := Envelope{Type: MsgFrame, Payload: f.Marshal()}
	return env.Marshal()
}

// EncodeStatus embrulha o status num envelope pronto para envio.
func EncodeStatus(s *Status) []byte {
	env := Envelope{Type: MsgStatus, Payload: s.Marshal()}
	return env.Marshal()
}
