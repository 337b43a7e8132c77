package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// ID — непрозрачный идентификатор сущности. Backend может отдавать числа,
// локальное хранилище пишет строки, поэтому декодируем оба варианта.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// NewLocalID выдаёт id в "локальном" формате: миллисекунды unix-времени строкой.
func NewLocalID(now time.Time) ID {
	return ID(strconv.FormatInt(now.UnixMilli(), 10))
}
