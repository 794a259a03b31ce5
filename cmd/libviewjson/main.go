// Command libviewjson builds the C-shared boundary over the tolerant JSON
// engine:
//
//	go build -buildmode=c-shared -o libviewjson.so ./cmd/libviewjson
//
// Exported surface:
//
//	char *viewjson_parse_file(const char *path);
//	char *viewjson_parse_text(const char *content, const char *name);
//	void  viewjson_string_free(char *ptr);
//
// Every non-null pointer returned by the parse functions transfers ownership
// to the caller and must be passed to viewjson_string_free exactly once.
// Passing a pointer that did not come from these entry points, or freeing
// twice, is undefined; the boundary cannot verify provenance. The parse
// functions never return null for malformed input: it always comes back as a
// diagnostic-report string.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	viewjson "github.com/arjunguha/viewjson"
)

// ownedCString is the single allocation path for strings crossing the
// boundary. C.CString allocates with C malloc, and viewjson_string_free
// releases with C free, so the alloc/free pair stays symmetric.
func ownedCString(s string) *C.char { return C.CString(s) }

// guard runs one engine invocation, converting a panic into an error report
// instead of unwinding across the C boundary.
func guard(f func() string) *C.char {
	out := func() (out string) {
		defer func() {
			if r := recover(); r != nil {
				out = viewjson.ErrorReport(viewjson.CodeInternal, fmt.Sprintf("panic: %v", r))
			}
		}()
		return f()
	}()
	return ownedCString(out)
}

//export viewjson_parse_file
func viewjson_parse_file(path *C.char) *C.char {
	if path == nil {
		return ownedCString(viewjson.ErrorReport(viewjson.CodeIOError, "received null path"))
	}
	p := C.GoString(path)
	return guard(func() string {
		return viewjson.ParseFile(p, viewjson.Options{})
	})
}

//export viewjson_parse_text
func viewjson_parse_text(content, name *C.char) *C.char {
	if content == nil {
		return ownedCString(viewjson.ErrorReport(viewjson.CodeIOError, "received null content"))
	}
	text := C.GoString(content)
	sourceName := "Content"
	if name != nil {
		sourceName = C.GoString(name)
	}
	return guard(func() string {
		return viewjson.ParseText(text, sourceName, viewjson.Options{})
	})
}

//export viewjson_string_free
func viewjson_string_free(ptr *C.char) {
	if ptr == nil {
		return
	}
	C.free(unsafe.Pointer(ptr))
}

func main() {}
