package service_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/llmedit/internal/edit"
	"github.com/jpl-au/llmedit/internal/fileio"
	"github.com/jpl-au/llmedit/internal/filestate"
	"github.com/jpl-au/llmedit/internal/hunk"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/jpl-au/llmedit/internal/session"
)

// memService returns a Service over an in-memory filesystem holding files.
func memService(files map[string]string) service.Service {
	fs := fileio.NewMemory()
	for p, c := range files {
		if _, err := fs.Write(p, c); err != nil {
			panic(err)
		}
	}
	return session.New(nil, filestate.NewMemory(), fs)
}

func Example_readThenEdit() {
	svc := memService(map[string]string{"/work/hello.txt": "Hello, World!\n"})
	defer svc.Close()
	ctx := context.Background()

	if _, err := svc.Read(ctx, "/work/hello.txt", service.ReadOptions{}); err != nil {
		panic(err)
	}

	res, err := svc.Edit(ctx, "/work/hello.txt", []edit.Edit{{OldString: "World", NewString: "Gopher"}}, service.EditOptions{})
	if err != nil {
		panic(err)
	}
	fmt.Print(hunk.Unified("a/hello.txt", "b/hello.txt", res.Hunks))
	// Output:
	// --- a/hello.txt
	// +++ b/hello.txt
	// @@ -1 +1 @@
	// -Hello, World!
	// +Hello, Gopher!
}

func Example_editRequiresRead() {
	svc := memService(map[string]string{"/work/hello.txt": "Hello, World!\n"})
	defer svc.Close()

	_, err := svc.Edit(context.Background(), "/work/hello.txt", []edit.Edit{{OldString: "World", NewString: "Gopher"}}, service.EditOptions{})
	fmt.Println(errors.Is(err, edit.ErrNotRead))
	fmt.Println(edit.KindOf(err))
	// Output:
	// true
	// not_read
}

func Example_dryRun() {
	svc := memService(map[string]string{"/work/list.txt": "a\nb\nc\n"})
	defer svc.Close()
	ctx := context.Background()

	if _, err := svc.Read(ctx, "/work/list.txt", service.ReadOptions{}); err != nil {
		panic(err)
	}
	res, err := svc.Edit(ctx, "/work/list.txt", []edit.Edit{{OldString: "b", NewString: "B"}}, service.EditOptions{DryRun: true})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%q +%d -%d\n", res.UpdatedContent, res.Added, res.Removed)
	// Output:
	// "a\nB\nc\n" +1 -1
}

func Example_diff() {
	svc := memService(nil)
	defer svc.Close()

	res, err := svc.Diff(context.Background(), "one\ntwo\n", "one\n2\n", service.DiffOptions{})
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Inserted, res.Deleted, res.Identical)
	fmt.Println(res.Hunks[0].Header())
	// Output:
	// 1 1 false
	// @@ -1,2 +1,2 @@
}
