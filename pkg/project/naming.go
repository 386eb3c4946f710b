// SPDX-License-Identifier: MPL-2.0

package project

import (
	"path/filepath"
	"strings"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// SkinFileName is a texture file name split along the naming contract.
type SkinFileName struct {
	VehicleID types.VehicleID
	Token     types.SkinToken
	// Ext is the extension without the leading dot, e.g. "dds".
	Ext string
}

// String reassembles the file name.
func (n SkinFileName) String() string {
	return string(n.VehicleID) + "_skin_" + string(n.Token) + "." + n.Ext
}

// ParseSkinFileName checks the base name of path against the naming contract
// <vehicleId>_skin_<token>.<ext> for id. The match is case-sensitive, the
// token must be non-empty without whitespace or separators, and the extension
// (text after the last dot) must be non-empty and alphanumeric.
func ParseSkinFileName(id types.VehicleID, path types.FilesystemPath) (SkinFileName, error) {
	base := filepath.Base(string(path))
	fail := func(reason string) (SkinFileName, error) {
		return SkinFileName{}, &NamingContractError{Path: path, VehicleID: id, Reason: reason}
	}

	prefix := string(id) + "_skin_"
	if !strings.HasPrefix(base, prefix) {
		return fail("must start with " + prefix)
	}
	rest := base[len(prefix):]
	dot := strings.LastIndexByte(rest, '.')
	if dot < 0 {
		return fail("missing file extension")
	}
	token, ext := rest[:dot], rest[dot+1:]
	if token == "" {
		return fail("missing skin name")
	}
	if ext == "" || strings.ContainsFunc(ext, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9')
	}) {
		return fail("extension must be alphanumeric")
	}
	if err := types.SkinToken(token).Validate(); err != nil {
		return fail("skin name must not contain whitespace or path separators")
	}
	return SkinFileName{VehicleID: id, Token: types.SkinToken(token), Ext: ext}, nil
}
