package workspace

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Event reports a change to one source file. File is nil when the file was
// removed or renamed away.
type Event struct {
	Path string
	File *File
}

func (e Event) Removed() bool {
	return e.File == nil
}

// Watcher keeps a workspace in sync with the file system. fsnotify does not
// watch recursively, so every directory below the root is added, including
// directories created while watching.
type Watcher struct {
	ws       *Workspace
	w        *fsnotify.Watcher
	onChange func(Event)
}

func NewWatcher(ws *Workspace, onChange func(Event)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{ws: ws, w: w, onChange: onChange}
	if err := fw.addTree(ws.RootDir()); err != nil {
		w.Close()
		return nil, err
	}
	return fw, nil
}

func (fw *Watcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && isHidden(info.Name()) {
			return filepath.SkipDir
		}
		log.Debugf("watching %s", path)
		return fw.w.Add(path)
	})
}

// Run processes file system events until ctx is done or the watcher is
// closed.
func (fw *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			fw.handle(ev)
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch: %s", err)
		}
	}
}

func (fw *Watcher) handle(ev fsnotify.Event) {
	path := ev.Name
	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if !IsSource(path) || fw.ws.GetFile(path) == nil {
			return
		}
		fw.ws.RemoveFile(path)
		fw.notify(Event{Path: path})

	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		if info.IsDir() {
			if ev.Op&fsnotify.Create != 0 && !isHidden(info.Name()) {
				if err := fw.addTree(path); err != nil {
					log.Errorf("watch %s: %s", path, err)
				}
			}
			return
		}
		if !IsSource(path) {
			return
		}
		if err := fw.ws.ScanFile(path); err != nil {
			log.Warningf("rescan %s: %s", path, err)
			return
		}
		fw.notify(Event{Path: path, File: fw.ws.GetFile(path)})
	}
}

func (fw *Watcher) notify(ev Event) {
	if fw.onChange != nil {
		fw.onChange(ev)
	}
}

func (fw *Watcher) Close() error {
	return fw.w.Close()
}
