// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

var ErrUnknown = errors.New("unknown variable")

type flag uint64

const (
	// cvar flags bitfield
	NONE flag = 0
	ROM  flag = 1 << iota
	NOTIFY
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	rom      bool
	notify   bool
	callback CallbackFunc
	name     string
	desc     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(cv.stringValue, 32)
	cv.value = float32(pf)
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	return cv.stringValue
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Description() string {
	return cv.desc
}

func (cv *Cvar) Default() string {
	return cv.defaultValue
}

func (cv *Cvar) Notify() bool {
	return cv.notify
}

func (cv *Cvar) Value() float32 {
	return cv.value
}

func (cv *Cvar) SetValue(value float32) {
	if float32(int(value)) == value {
		cv.SetByString(strconv.FormatInt(int64(value), 10))
	} else {
		cv.SetByString(strconv.FormatFloat(float64(value), 'f', -1, 32))
	}
}

func (cv *Cvar) Toggle() {
	if cv.Bool() {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	switch cv.stringValue {
	case "", "0", "false", "off", "no":
		return false
	}
	return true
}

// Vars is a set of named variables. It is not safe for concurrent mutation;
// configure it before the load starts.
type Vars struct {
	byName map[string]*Cvar
}

func New() *Vars {
	return &Vars{byName: make(map[string]*Cvar)}
}

func (v *Vars) Get(name string) (*Cvar, bool) {
	cv, ok := v.byName[name]
	return cv, ok
}

// All returns the variables sorted by name.
func (v *Vars) All() []*Cvar {
	r := make([]*Cvar, 0, len(v.byName))
	for _, cv := range v.byName {
		r = append(r, cv)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].name < r[j].name })
	return r
}

func (v *Vars) Register(name, value, desc string, flags flag) (*Cvar, error) {
	if _, ok := v.byName[name]; ok {
		return nil, errors.Errorf("Can't register variable %s, already defined", name)
	}
	cv := &Cvar{name: name, desc: desc, defaultValue: value}
	cv.SetByString(value)
	cv.rom = flags&ROM != 0
	cv.notify = flags&NOTIFY != 0
	v.byName[name] = cv
	return cv, nil
}

func (v *Vars) MustRegister(name, value, desc string, flags flag) *Cvar {
	cv, err := v.Register(name, value, desc, flags)
	if err != nil {
		panic(err)
	}
	return cv
}

// Set assigns a value by name.
func (v *Vars) Set(name, value string) error {
	cv, ok := v.byName[name]
	if !ok {
		return errors.Wrap(ErrUnknown, name)
	}
	if cv.rom {
		return errors.Errorf("%s is read only", name)
	}
	cv.SetByString(value)
	return nil
}

func (v *Vars) ResetAll() {
	for _, cv := range v.byName {
		cv.Reset()
	}
}
