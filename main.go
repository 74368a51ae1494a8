// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"goquell/commandline"
	"goquell/config"
	"goquell/conlog"
	qimage "goquell/image"
	"goquell/report"
	"goquell/scene"
	"goquell/session"
)

var flags commandline.Flags

func init() {
	flags.Register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] map.bsp\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	cfg, err := flags.Config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := conlog.SetDefault(cfg.LogLevel)
	mapPath := flag.Arg(0)

	if err := load(cfg, log, mapPath); err != nil {
		log.Error("Load failed", "map", mapPath, "err", err)
		if !flags.Watch {
			os.Exit(1)
		}
	}
	if flags.Watch {
		if err := watch(cfg, log, mapPath); err != nil {
			log.Error("Watch failed", "err", err)
			os.Exit(1)
		}
	}
}

// load runs one map load in a fresh session and writes the requested
// outputs.
func load(cfg *config.Config, log *slog.Logger, mapPath string) error {
	s, err := session.New(cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	sc, rep, err := s.Load(mapPath)
	if err != nil {
		return err
	}
	rep.Log(log)

	if flags.Wire != "" {
		b, err := sc.MarshalWire()
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.Wire, b, 0o644); err != nil {
			return errors.Wrap(err, "writing wire scene")
		}
		log.Info("Wrote scene", "file", flags.Wire)
	}
	if flags.GLTF != "" {
		if err := writeGLTF(flags.GLTF, sc, s.Assets()); err != nil {
			return err
		}
		log.Info("Wrote glTF", "file", flags.GLTF)
	}
	if flags.Lightmap != "" && sc.Lightmap != nil {
		lm := sc.Lightmap
		if err := qimage.Write(flags.Lightmap, lm.Pix, lm.Width, lm.Height); err != nil {
			return errors.Wrap(err, "writing lightmap")
		}
		log.Info("Wrote lightmap", "file", flags.Lightmap, "atlas", lm.String())
	}
	if flags.Dump {
		dump(sc, rep)
	}
	return nil
}

func writeGLTF(name string, sc *scene.Scene, assets *session.Assets) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "creating glTF")
	}
	if err := scene.ExportGLTF(f, sc, assets); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// dump prints the scene without vertex data.
func dump(sc *scene.Scene, rep *report.Report) {
	cs := spew.ConfigState{
		Indent:                  "  ",
		MaxDepth:                3,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	if b, err := sc.MarshalWire(); err == nil {
		if sum, err := scene.UnmarshalWireSummary(b); err == nil {
			cs.Dump(sum)
		}
	}
	for _, e := range sc.Visible() {
		cs.Dump(e.ClassName, e.Ref, e.Origin, e.Cluster)
	}
	cs.Dump(rep.Degraded(), rep.Errors())
}

// watch reloads the map whenever it or a file below a loose search
// directory changes. Bursts of events are merged into one reload.
func watch(cfg *config.Config, log *slog.Logger, mapPath string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watcher")
	}
	defer w.Close()

	mapAbs, err := filepath.Abs(mapPath)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(mapAbs)); err != nil {
		return errors.Wrap(err, "watching map directory")
	}
	for _, d := range commandline.Dirs(cfg) {
		// fsnotify does not recurse
		err := filepath.WalkDir(d, func(p string, de fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if de.IsDir() {
				return w.Add(p)
			}
			return nil
		})
		if err != nil {
			log.Warn("Not watching", "dir", d, "err", err)
		}
	}
	log.Info("Watching", "map", mapAbs, "dirs", len(w.WatchList()))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	var reload <-chan time.Time
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, mapAbs) {
				continue
			}
			log.Debug("Change", "file", ev.Name, "op", ev.Op.String())
			reload = time.After(250 * time.Millisecond)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher", "err", err)
		case <-reload:
			reload = nil
			if err := load(cfg, log, mapPath); err != nil {
				log.Error("Reload failed", "map", mapPath, "err", err)
			}
		case <-interrupt:
			return nil
		}
	}
}

// relevant drops events for unrelated files next to the map.
func relevant(ev fsnotify.Event, mapAbs string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if filepath.Dir(ev.Name) == filepath.Dir(mapAbs) {
		return ev.Name == mapAbs
	}
	return true
}
