// Package fileutil enumerates the script files a conversion run reads.
//
// ScanDirectory walks a root directory depth-first with filepath.WalkDir and
// returns matching files in discovery order. Filters:
//   - Extensions: exact, case-sensitive suffix match, with or without the leading dot
//   - ExcludeDirs: directory names pruned from the walk
//
// Any error while reading the tree is returned and no partial result is
// produced:
//
//	result, err := fileutil.ScanDirectory("data/monster", fileutil.ScanOptions{
//	    Extensions: []string{".lua"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, path := range result.Files {
//	    fmt.Println(path)
//	}
package fileutil
