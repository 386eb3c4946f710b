// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"errors"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/fspath"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/packaging"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/project"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/registry"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/skintemplate"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

type Id int

const (
	MalformedConfigId Id = iota + 1
	NoCanonicalSkinId
	InvalidVehicleIdId
	DuplicateVehicleId
	UnknownVehicleId
	BuiltinVehicleId
	NamingContractId
	DuplicateAssetNameId
	VehicleNotInProjectId
	AssetNotFoundId
	InvalidProjectFileId
	InvalidModNameId
	ValidationFailedId
	ArchiveExistsId
	IOFailureId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

// kinds maps error sentinels to issues. Order matters: the first match wins,
// so wrapper kinds come before the causes they may wrap.
var kinds = []struct {
	err error
	id  Id
}{
	{packaging.ErrValidationFailed, ValidationFailedId},
	{packaging.ErrArchiveAlreadyExists, ArchiveExistsId},
	{skintemplate.ErrNoCanonicalSkinFound, NoCanonicalSkinId},
	{configdoc.ErrMalformedConfig, MalformedConfigId},
	{registry.ErrDuplicateVehicleID, DuplicateVehicleId},
	{registry.ErrUnknownVehicleID, UnknownVehicleId},
	{registry.ErrBuiltinVehicle, BuiltinVehicleId},
	{project.ErrNamingContractViolation, NamingContractId},
	{project.ErrDuplicateAssetName, DuplicateAssetNameId},
	{project.ErrVehicleNotInProject, VehicleNotInProjectId},
	{project.ErrAssetNotFound, AssetNotFoundId},
	{project.ErrInvalidProjectFile, InvalidProjectFileId},
	{types.ErrInvalidVehicleID, InvalidVehicleIdId},
	{types.ErrInvalidModName, InvalidModNameId},
	{fspath.ErrIOFailure, IOFailureId},
}

// ForError returns the issue describing err, or nil when err is of no known
// kind.
func ForError(err error) *Issue {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return issues[k.id]
		}
	}
	return nil
}

var (
	render = glamour.Render

	malformedConfigIssue = &Issue{
		id: MalformedConfigId,
		mdMsg: `
# The vehicle file could not be parsed!

A ` + "`.materials.json`" + ` or ` + "`.jbeam`" + ` file is not well formed. The
message above names the file and the byte offset of the first problem.

## Things you can try:
- Open the file in an editor and look at the reported offset
- Check for a missing comma or an unclosed brace near that spot
- Re-extract the file from the vehicle's zip in the game's content folder
- Inspect what does parse:
~~~
$ beamskin inspect path/to/file.jbeam
~~~`,
	}

	noCanonicalSkinIssue = &Issue{
		id: NoCanonicalSkinId,
		mdMsg: `
# No skin template found in this vehicle!

None of the materials has a ` + "`mapTo`" + ` and a color texture, or none of
the parts is a paint design (` + "`globalSkin`" + `, ` + "`skinName`" + ` or
` + "`slotType: \"paint_design\"`" + `).

## Things you can try:
- Pick the vehicle's ` + "`skin.materials.json`" + ` rather than its main materials file
- Pick a ` + "`.jbeam`" + ` that defines a paint design part, usually named ` + "`<vehicle>_skin_*.jbeam`" + `
- Run with ` + "`--verbose`" + ` to see which entries were considered`,
		extLinks: []HttpLink{"https://documentation.beamng.com/modding/vehicle/vehicle_system/skins/"},
	}

	invalidVehicleIdIssue = &Issue{
		id: InvalidVehicleIdId,
		mdMsg: `
# Invalid vehicle ID!

Vehicle IDs are the folder names the game uses under ` + "`vehicles/`" + `.
They are lowercase, contain no spaces, and no path separators.

## Examples:
- ` + "`etk800`" + `
- ` + "`pickup`" + `
- ` + "`my_custom_car`",
	}

	duplicateVehicleIssue = &Issue{
		id: DuplicateVehicleId,
		mdMsg: `
# This vehicle is already registered!

Each vehicle ID can only be registered once. Built-in vehicles cannot be
registered again.

## Things you can try:
- Look it up:
~~~
$ beamskin vehicle show <id>
~~~
- Remove your custom definition first, then add it again:
~~~
$ beamskin vehicle remove <id>
~~~`,
	}

	unknownVehicleIssue = &Issue{
		id: UnknownVehicleId,
		mdMsg: `
# Unknown vehicle!

No built-in or custom vehicle has this ID.

## Things you can try:
- Search the catalog:
~~~
$ beamskin vehicle search <name>
~~~
- Register the vehicle from its material and part files:
~~~
$ beamskin vehicle add <id> --materials skin.materials.json --jbeam skin.jbeam
~~~`,
	}

	builtinVehicleIssue = &Issue{
		id: BuiltinVehicleId,
		mdMsg: `
# Built-in vehicles cannot be removed!

Only vehicles you registered yourself can be removed. Run
` + "`beamskin vehicle list --custom`" + ` to see them.`,
	}

	namingContractIssue = &Issue{
		id: NamingContractId,
		mdMsg: `
# The texture file name does not match its vehicle!

Skin textures must be named ` + "`<vehicleId>_skin_<name>.<ext>`" + `. The match
is case-sensitive, and the skin name may not contain spaces.

## Examples for the ETK 800-Series:
- ` + "`etk800_skin_RacingStripes.dds`" + `
- ` + "`etk800_skin_Red.png`" + `

## Things you can try:
- Rename the file, keeping the vehicle ID in lowercase`,
	}

	duplicateAssetNameIssue = &Issue{
		id: DuplicateAssetNameId,
		mdMsg: `
# A skin with this name already exists for this vehicle!

Display names must be unique within one vehicle. Pass ` + "`--name`" + ` to
choose a different one.`,
	}

	vehicleNotInProjectIssue = &Issue{
		id: VehicleNotInProjectId,
		mdMsg: `
# The vehicle is not part of this project!

## Things you can try:
- Add it first:
~~~
$ beamskin project add-vehicle <id>
~~~`,
	}

	assetNotFoundIssue = &Issue{
		id: AssetNotFoundId,
		mdMsg: `
# No skin with this name!

Run ` + "`beamskin project show`" + ` to list the skins of every vehicle.`,
	}

	invalidProjectFileIssue = &Issue{
		id: InvalidProjectFileId,
		mdMsg: `
# The project file could not be read!

The file is not a BeamSkin project or was written by a newer version.

## Things you can try:
- Check that the file ends with ` + "`.bsproject`" + ` and is valid JSON
- Update beamskin`,
	}

	invalidModNameIssue = &Issue{
		id: InvalidModNameId,
		mdMsg: `
# Invalid mod name!

The mod name becomes the archive file name and a folder inside it. Use
letters, digits, dots, dashes, and underscores, starting with a letter or
digit.

~~~
$ beamskin project info --mod-name MyCoolSkins
~~~`,
	}

	validationFailedIssue = &Issue{
		id: ValidationFailedId,
		mdMsg: `
# The project cannot be packaged yet!

Every problem found is listed above. Nothing was written.

## Things you can try:
- Add at least one vehicle and one skin per vehicle
- Fix or remove skins whose texture files are missing
- Check that every vehicle is still registered`,
	}

	archiveExistsIssue = &Issue{
		id: ArchiveExistsId,
		mdMsg: `
# The mod archive already exists!

Archives are never overwritten.

## Things you can try:
- Change the mod name with ` + "`beamskin project info --name`" + `
- Build into another folder with ` + "`--output`" + `
- Delete or move the old archive first`,
	}

	ioFailureIssue = &Issue{
		id: IOFailureId,
		mdMsg: `
# A file could not be read or written!

## Common causes:
- The folder is read-only or belongs to another user
- The disk is full
- The game is running and holds the file open

## Things you can try:
- Check the permissions of the path named above
- Set ` + "`data_dir`" + ` or ` + "`output_dir`" + ` in your config to a folder you own`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration!

## Things you can try:
- Check the CUE syntax of your config file
- Show where it is looked for:
~~~
$ beamskin config path
~~~

## Example:
~~~cue
author_name: "Jo"
output_dir:  "/home/jo/mods"
ui: {
	verbose: true
}
~~~`,
	}

	issues = map[Id]*Issue{
		malformedConfigIssue.Id():     malformedConfigIssue,
		noCanonicalSkinIssue.Id():     noCanonicalSkinIssue,
		invalidVehicleIdIssue.Id():    invalidVehicleIdIssue,
		duplicateVehicleIssue.Id():    duplicateVehicleIssue,
		unknownVehicleIssue.Id():      unknownVehicleIssue,
		builtinVehicleIssue.Id():      builtinVehicleIssue,
		namingContractIssue.Id():      namingContractIssue,
		duplicateAssetNameIssue.Id():  duplicateAssetNameIssue,
		vehicleNotInProjectIssue.Id(): vehicleNotInProjectIssue,
		assetNotFoundIssue.Id():       assetNotFoundIssue,
		invalidProjectFileIssue.Id():  invalidProjectFileIssue,
		invalidModNameIssue.Id():      invalidModNameIssue,
		validationFailedIssue.Id():    validationFailedIssue,
		archiveExistsIssue.Id():       archiveExistsIssue,
		ioFailureIssue.Id():           ioFailureIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
