package sysinfo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGitRevision(t *testing.T) {
	readFrom := func(files map[string]string) func(string) (string, error) {
		return func(path string) (string, error) {
			if v, ok := files[filepath.ToSlash(path)]; ok {
				return v, nil
			}
			return "", os.ErrNotExist
		}
	}

	t.Run("detached head", func(t *testing.T) {
		rf := readFrom(map[string]string{
			"/srv/app/.git/HEAD": "0123456789abcdef0123456789abcdef01234567\n",
		})
		if got := gitRevision("/srv/app", rf); got != "0123456" {
			t.Fatalf("gitRevision = %q; want 0123456", got)
		}
	})

	t.Run("symbolic ref", func(t *testing.T) {
		rf := readFrom(map[string]string{
			"/srv/app/.git/HEAD":            "ref: refs/heads/main\n",
			"/srv/app/.git/refs/heads/main": "deadbeefcafe0123456789abcdef0123456789ab\n",
		})
		if got := gitRevision("/srv/app", rf); got != "deadbee" {
			t.Fatalf("gitRevision = %q; want deadbee", got)
		}
	})

	t.Run("missing ref file", func(t *testing.T) {
		rf := readFrom(map[string]string{
			"/srv/app/.git/HEAD": "ref: refs/heads/gone\n",
		})
		if got := gitRevision("/srv/app", rf); got != "" {
			t.Fatalf("gitRevision = %q; want empty", got)
		}
	})

	t.Run("no git directory", func(t *testing.T) {
		rf := readFrom(nil)
		if got := gitRevision("/srv/app", rf); got != "" {
			t.Fatalf("gitRevision = %q; want empty", got)
		}
	})

	t.Run("malformed hash", func(t *testing.T) {
		rf := readFrom(map[string]string{
			"/srv/app/.git/HEAD": "this is not a hash\n",
		})
		if got := gitRevision("/srv/app", rf); got != "" {
			t.Fatalf("gitRevision = %q; want empty", got)
		}
	})

	t.Run("short content", func(t *testing.T) {
		rf := readFrom(map[string]string{
			"/srv/app/.git/HEAD": "abc\n",
		})
		if got := gitRevision("/srv/app", rf); got != "" {
			t.Fatalf("gitRevision = %q; want empty", got)
		}
	})

	t.Run("traversal in ref rejected", func(t *testing.T) {
		rf := readFrom(map[string]string{
			"/srv/app/.git/HEAD":       "ref: ../../etc/passwd\n",
			"/srv/app/.git/etc/passwd": "0123456789abcdef0123456789abcdef01234567",
		})
		if got := gitRevision("/srv/app", rf); got != "" {
			t.Fatalf("gitRevision = %q; want empty", got)
		}
	})

	t.Run("empty root", func(t *testing.T) {
		rf := readFrom(nil)
		if got := gitRevision("", rf); got != "" {
			t.Fatalf("gitRevision = %q; want empty", got)
		}
	})
}
