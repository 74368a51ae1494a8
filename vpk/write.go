// SPDX-License-Identifier: GPL-2.0-or-later

package vpk

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"
	"path"
	"sort"
	"strings"
)

// Write creates a single-file version 1 archive with every payload stored
// after the tree. The first preload bytes of each file go into the tree.
func Write(w io.Writer, files map[string][]byte, preload int) error {
	// ext -> dir -> names
	tree := map[string]map[string][]string{}
	for p := range files {
		dir, file := path.Split(p)
		dir = strings.TrimSuffix(dir, "/")
		if dir == "" {
			dir = " "
		}
		ext := path.Ext(file)
		file = strings.TrimSuffix(file, ext)
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			ext = " "
		}
		if tree[ext] == nil {
			tree[ext] = map[string][]string{}
		}
		tree[ext][dir] = append(tree[ext][dir], file)
	}
	var t, data bytes.Buffer
	str := func(s string) {
		t.WriteString(s)
		t.WriteByte(0)
	}
	for _, ext := range sortedKeys(tree) {
		str(ext)
		for _, dir := range sortedKeys(tree[ext]) {
			str(dir)
			names := tree[ext][dir]
			sort.Strings(names)
			for _, n := range names {
				str(n)
				content := files[joinPath(dir, n, ext)]
				pre := preload
				if pre > len(content) {
					pre = len(content)
				}
				de := dirEntry{
					CRC:          crc32.ChecksumIEEE(content),
					PreloadBytes: uint16(pre),
					ArchiveIndex: DirArchive,
					EntryOffset:  uint32(data.Len()),
					EntryLength:  uint32(len(content) - pre),
					Terminator:   terminator,
				}
				binary.Write(&t, binary.LittleEndian, &de)
				t.Write(content[:pre])
				data.Write(content[pre:])
			}
			str("")
		}
		str("")
	}
	str("")
	h := header{Signature: Signature, Version: 1, TreeSize: uint32(t.Len())}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	if _, err := w.Write(t.Bytes()); err != nil {
		return err
	}
	_, err := w.Write(data.Bytes())
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	k := make([]string, 0, len(m))
	for s := range m {
		k = append(k, s)
	}
	sort.Strings(k)
	return k
}
