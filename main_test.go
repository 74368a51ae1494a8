// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	mapAbs := filepath.Join("/maps", "test.bsp")
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: mapAbs, Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: mapAbs, Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: filepath.Join("/maps", "other.bsp"), Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: filepath.Join("/game", "materials", "a.vmt"), Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: filepath.Join("/game", "materials", "a.vmt"), Op: fsnotify.Remove}, false},
	}
	for _, tc := range tests {
		if got := relevant(tc.ev, mapAbs); got != tc.want {
			t.Errorf("relevant(%v) = %v, want %v", tc.ev, got, tc.want)
		}
	}
}
