package forest

import "github.com/agentic-research/canopy/api"

func rec(id int, name string, categories []string, parent int, size int64) api.FileRecord {
	return api.FileRecord{ID: id, Name: name, Categories: categories, Parent: parent, Size: size}
}

func docs() []string { return []string{"Documents"} }

// oneLayer is a root with four direct children.
func oneLayer() []api.FileRecord {
	return []api.FileRecord{
		rec(1, "1", docs(), api.NoParent, 1024),
		rec(2, "2", docs(), 1, 1024),
		rec(3, "3", docs(), 1, 1024),
		rec(4, "4", docs(), 1, 1024),
		rec(5, "5", docs(), 1, 1024),
	}
}

// multiLayer is three trees of uneven depth.
func multiLayer() []api.FileRecord {
	return []api.FileRecord{
		rec(1, "1", docs(), api.NoParent, 1024),
		rec(2, "2", docs(), api.NoParent, 1024),
		rec(3, "3", docs(), api.NoParent, 1024),
		rec(4, "4", docs(), 1, 1024),
		rec(5, "5", docs(), 1, 1024),
		rec(6, "6", docs(), 2, 1024),
		rec(7, "7", docs(), 6, 1024),
		rec(8, "8", docs(), 2, 1024),
		rec(9, "9", docs(), 7, 1024),
		rec(10, "10", docs(), 4, 1024),
	}
}

func nestedCategories() []api.FileRecord {
	return []api.FileRecord{
		rec(1, "1", []string{"b", "a"}, api.NoParent, 1024),
		rec(2, "2", []string{"b", "a"}, api.NoParent, 1024),
		rec(3, "3", []string{"b", "a", "c"}, api.NoParent, 1024),
		rec(4, "4", []string{"b", "a", "c", "d"}, api.NoParent, 1024),
		rec(5, "5", []string{"b", "a", "c", "d", "f"}, api.NoParent, 1024),
		rec(6, "6", []string{"b", "a", "c", "d", "e"}, api.NoParent, 1024),
	}
}

func mixedCaseCategories() []api.FileRecord {
	tags := func() []string { return []string{"A", "d", "e", "C", "b"} }
	return []api.FileRecord{
		rec(1, "1", tags(), api.NoParent, 1024),
		rec(2, "2", tags(), api.NoParent, 1024),
		rec(3, "3", tags(), api.NoParent, 1024),
		rec(4, "4", tags(), api.NoParent, 1024),
	}
}

// treeA aggregates to 10024 at its root.
func treeA() []api.FileRecord {
	return []api.FileRecord{
		rec(1, "1", nil, api.NoParent, 1024),
		rec(2, "2", nil, 1, 2000),
		rec(3, "3", nil, 1, 3000),
		rec(4, "4", nil, 1, 2000),
		rec(5, "5", nil, 4, 2000),
	}
}

// treeB is a chain listed child-first; its root aggregates to 36044.
func treeB() []api.FileRecord {
	return []api.FileRecord{
		rec(6, "6", nil, 9, 6044),
		rec(7, "7", nil, 6, 10000),
		rec(8, "8", nil, 7, 10000),
		rec(9, "9", nil, api.NoParent, 10000),
	}
}

// sameSize grows tree A to 34044, still short of tree B.
func sameSize() []api.FileRecord {
	records := append(treeA(), treeB()...)
	records[4].Size = 26020
	return records
}

// dryRun is a small directory listing with three roots.
func dryRun() []api.FileRecord {
	return []api.FileRecord{
		rec(1, "Document.txt", []string{"Documents"}, 3, 1024),
		rec(2, "Image.jpg", []string{"Media", "Photos"}, 34, 2048),
		rec(3, "Folder", []string{"Folder"}, api.NoParent, 0),
		rec(5, "Spreadsheet.xlsx", []string{"Documents", "Excel"}, 3, 4096),
		rec(8, "Backup.zip", []string{"Backup"}, 233, 8192),
		rec(13, "Presentation.pptx", []string{"Documents", "Presentation"}, 3, 3072),
		rec(21, "Video.mp4", []string{"Media", "Videos"}, 34, 6144),
		rec(34, "Folder2", []string{"Folder"}, 3, 0),
		rec(55, "Code.py", []string{"Programming"}, api.NoParent, 1536),
		rec(89, "Audio.mp3", []string{"Media", "Audio"}, 34, 2560),
		rec(144, "Spreadsheet2.xlsx", []string{"Documents", "Excel"}, 3, 2048),
		rec(233, "Folder3", []string{"Folder"}, api.NoParent, 4096),
	}
}
