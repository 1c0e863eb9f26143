// Package category classifies files into semantic groups by extension.
// The extension table is ordered: several extensions appear in more than
// one group, and the group declared first always wins.
package category

import (
	"strings"
)

// Category is a semantic file-kind label.
type Category int

// Categories in declaration order. Reports list categories in this order.
const (
	Documents Category = iota
	Images
	Videos
	Audio
	Code
	Archives
	Executables
	System
	Fonts
	Models3D
	Web
	Games
	Other
	NoExtension
)

var names = [...]string{
	Documents:   "Documents",
	Images:      "Images",
	Videos:      "Videos",
	Audio:       "Audio",
	Code:        "Code",
	Archives:    "Archives",
	Executables: "Executables",
	System:      "System",
	Fonts:       "Fonts",
	Models3D:    "3D Models",
	Web:         "Web",
	Games:       "Games",
	Other:       "Other",
	NoExtension: "No Extension",
}

// String returns the display name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(names) {
		return names[Other]
	}
	return names[c]
}

// All returns every category in declaration order.
func All() []Category {
	out := make([]Category, len(names))
	for i := range names {
		out[i] = Category(i)
	}
	return out
}

type entry struct {
	category   Category
	extensions []string
}

// table lists extensions per category. Order matters: .ts is both a video
// container and TypeScript source and resolves to Videos.
var table = []entry{
	{Documents, []string{
		".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".xls", ".xlsx",
		".ppt", ".pptx", ".md", ".csv", ".json", ".xml", ".yaml", ".yml",
		".epub", ".mobi", ".azw", ".azw3", ".lit", ".fb2", ".djvu", ".msg",
		".properties", ".xsd", ".resx", ".info", ".adoc", ".po", ".rdb",
	}},
	{Images, []string{
		".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".svg", ".webp",
		".ico", ".psd", ".ai", ".eps", ".raw", ".cr2", ".nef", ".heic", ".heif",
		".tga", ".exr", ".hdr", ".indd", ".ind", ".cdr", ".dds", ".wmf", ".cur",
		".fon", ".bcmap",
	}},
	{Videos, []string{
		".mp4", ".avi", ".mov", ".wmv", ".flv", ".mkv", ".webm", ".m4v",
		".3gp", ".mpeg", ".mpg", ".ts", ".mts", ".m2ts", ".vob", ".ogv",
		".mxf", ".m2v", ".svi", ".3g2", ".f4v", ".f4p", ".f4a", ".f4b",
	}},
	{Audio, []string{
		".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a", ".wma", ".mid",
		".midi", ".opus", ".aiff", ".alac", ".wv", ".ape", ".ac3", ".dts",
		".mka", ".tta", ".tak", ".ofr", ".ofs", ".spx", ".hca",
	}},
	{Code, []string{
		".py", ".java", ".cpp", ".c", ".js", ".html", ".css", ".php", ".rb",
		".go", ".rs", ".swift", ".kt", ".ts", ".jsx", ".tsx", ".vue", ".svelte",
		".sh", ".bash", ".zsh", ".ps1", ".bat", ".cmd", ".vbs", ".wsf", ".reg",
		".inf", ".ini", ".cfg", ".config", ".yml", ".yaml", ".toml", ".env",
		".h", ".hpp", ".cs", ".groovy", ".cmake", ".qml", ".vim", ".glsl", ".lua",
		".tcl", ".pri", ".idl", ".hlsl", ".pm", ".pl", ".cc", ".ush", ".usf",
		".mjs", ".inc", ".pyx", ".r", ".cuh", ".inl",
	}},
	{Archives, []string{
		".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz",
		".dmg", ".pkg", ".deb", ".rpm", ".msi", ".cab", ".arj", ".lzh",
		".lha", ".ace", ".arc", ".wim", ".swm", ".esd", ".pak", ".tgz",
		".archive",
	}},
	{Executables, []string{
		".exe", ".dll", ".so", ".dylib", ".app", ".bin", ".msi",
		".com", ".sys", ".drv", ".ocx", ".cpl", ".scr", ".pif", ".pyd",
		".class", ".jar", ".a", ".lib", ".o", ".dex", ".nca", ".suprx",
	}},
	{System, []string{
		".sys", ".ini", ".conf", ".config", ".reg", ".dat", ".log", ".tmp",
		".temp", ".cache", ".db", ".sqlite", ".bak", ".old", ".dmp", ".hiv",
		".evtx", ".etl", ".evt", ".blg", ".perf", ".manifest", ".cat",
		".mui", ".mum", ".meta", ".mof", ".nls", ".mo", ".cdxml", ".adml",
		".admx", ".mun", ".debug", ".tlb", ".pnf", ".lock", ".msc", ".plist",
		".vdf",
	}},
	{Fonts, []string{
		".ttf", ".otf", ".woff", ".woff2", ".eot", ".sfnt", ".bdf", ".pcf",
		".pfa", ".pfb", ".ttc", ".dfont", ".pfm", ".afm", ".pf2", ".pfr",
	}},
	{Models3D, []string{
		".obj", ".fbx", ".3ds", ".max", ".blend", ".dae", ".stl", ".ply",
		".glb", ".gltf", ".usd", ".usda", ".usdc", ".usdz", ".abc", ".bvh",
		".x3d", ".x3db", ".x3dv", ".wrl", ".vrml", ".pskx", ".psk", ".xyz",
		".md5mesh", ".prefab", ".asset",
	}},
	{Web, []string{
		".html", ".htm", ".css", ".js", ".php", ".asp", ".aspx", ".jsp",
		".json", ".xml", ".svg", ".webp", ".woff", ".woff2", ".eot", ".ttf",
		".otf", ".scss", ".sass", ".less", ".styl", ".coffee", ".ts", ".jsx",
		".qml", ".qmlc", ".qmltypes", ".xaml",
	}},
	{Games, []string{
		".rom", ".iso", ".bin", ".cue", ".gba", ".nds", ".3ds", ".cia", ".cci",
		".sav", ".srm", ".state", ".zst", ".z64", ".v64", ".n64", ".gb", ".gbc",
		".uasset", ".uexp", ".ubulk", ".umap", ".rpgmvp", ".gnf", ".gxt",
		".shader", ".compute", ".shadergraph", ".shadersubgraph",
	}},
}

// index resolves an extension to the first category in table order that
// lists it.
var index = buildIndex()

func buildIndex() map[string]Category {
	m := make(map[string]Category)
	for _, e := range table {
		for _, ext := range e.extensions {
			if _, seen := m[ext]; !seen {
				m[ext] = e.category
			}
		}
	}
	return m
}

// Classify maps an extension (with leading dot, any case) to its category.
// An empty extension yields NoExtension; an extension listed nowhere
// yields Other.
func Classify(ext string) Category {
	if ext == "" {
		return NoExtension
	}
	if c, ok := index[strings.ToLower(ext)]; ok {
		return c
	}
	return Other
}

// Extensions returns the extensions listed under c, in table order.
// Listing an extension here does not mean it classifies as c; an earlier
// category may claim it.
func Extensions(c Category) []string {
	for _, e := range table {
		if e.category == c {
			out := make([]string, len(e.extensions))
			copy(out, e.extensions)
			return out
		}
	}
	return nil
}
