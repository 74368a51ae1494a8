// SPDX-License-Identifier: GPL-2.0-or-later

//go:generate  protoc -I/usr/local/include -I. --go_out=. --go_opt=paths=source_relative scene.proto
package scenepb
