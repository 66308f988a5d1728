package store

import "github.com/andrewpaige1/lexideck-api/models"

// folderArena is a user's folder tree held as id -> parent links, so cycle
// checks and subtree walks never chase object pointers.
type folderArena struct {
	parent   map[string]string
	children map[string][]string
	ids      map[string]bool
}

func newFolderArena(folders []models.Folder) *folderArena {
	a := &folderArena{
		parent:   make(map[string]string, len(folders)),
		children: make(map[string][]string, len(folders)),
		ids:      make(map[string]bool, len(folders)),
	}
	for _, f := range folders {
		a.ids[f.ID] = true
		if f.ParentFolderID != nil && *f.ParentFolderID != "" {
			a.parent[f.ID] = *f.ParentFolderID
			a.children[*f.ParentFolderID] = append(a.children[*f.ParentFolderID], f.ID)
		}
	}
	return a
}

func (a *folderArena) has(id string) bool {
	return a.ids[id]
}

// isAncestor reports whether ancestor sits on the parent chain above id.
func (a *folderArena) isAncestor(ancestor, id string) bool {
	seen := map[string]bool{id: true}
	for cur, ok := a.parent[id]; ok; cur, ok = a.parent[cur] {
		if cur == ancestor {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
	}
	return false
}

// wouldCycle reports whether giving id the parent newParent makes id its own ancestor.
func (a *folderArena) wouldCycle(id, newParent string) bool {
	return id == newParent || a.isAncestor(id, newParent)
}

// subtree lists root and every descendant, breadth first.
func (a *folderArena) subtree(root string) []string {
	out := []string{root}
	seen := map[string]bool{root: true}
	for i := 0; i < len(out); i++ {
		for _, child := range a.children[out[i]] {
			if !seen[child] {
				seen[child] = true
				out = append(out, child)
			}
		}
	}
	return out
}
