package httpx

import (
	"net/http"
	"os"
	"strings"
)

// StaticDir serves the files below root under the URL prefix. Directories
// are never listed, and any path segment starting with a dot answers 404,
// which keeps staging areas private.
func StaticDir(prefix, root string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(noListingFS{http.Dir(root)}))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, seg := range strings.Split(r.URL.Path, "/") {
			if strings.HasPrefix(seg, ".") {
				http.NotFound(w, r)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
