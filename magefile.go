//go:build mage

package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	_ "github.com/magefile/mage/mage"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

var Aliases = map[string]any{
	"noiz":         Build,
	"cleanpackage": CleanPackage,
}

const module = "github.com/machbase/neo-noise"

var vLastCommit string
var vBuildVersion string

func Build() error {
	mg.Deps(GetVersion)
	return build("noiz")
}

func build(target string) error {
	fmt.Println("Build", target, vBuildVersion, "...")

	timestamp := time.Now().Format("2006-01-02T15:04:05")
	gitSHA := vLastCommit
	if len(gitSHA) > 8 {
		gitSHA = gitSHA[0:8]
	}
	goVersion := strings.TrimPrefix(runtime.Version(), "go")

	env := map[string]string{"GO111MODULE": "on", "CGO_ENABLED": "0"}
	ldflags := strings.Join([]string{
		"-X", fmt.Sprintf("%s/mods.goVersionString=%s", module, goVersion),
		"-X", fmt.Sprintf("%s/mods.versionString=%s", module, vBuildVersion),
		"-X", fmt.Sprintf("%s/mods.versionGitSHA=%s", module, gitSHA),
		"-X", fmt.Sprintf("%s/mods.buildTimestamp=%s", module, timestamp),
	}, " ")
	args := []string{"build", "-ldflags", ldflags}
	if runtime.GOOS == "windows" {
		args = append(args, "-o", fmt.Sprintf("./tmp/%s.exe", target))
	} else {
		args = append(args, "-o", fmt.Sprintf("./tmp/%s", target))
	}
	args = append(args, fmt.Sprintf("./main/%s", target))

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	if err := sh.RunWithV(env, "go", args...); err != nil {
		return err
	}
	fmt.Println("Build done.")
	return nil
}

func Test() error {
	if err := os.MkdirAll("tmp", 0755); err != nil {
		return err
	}
	if err := sh.RunV("go", "test", "./...", "-cover", "-coverprofile", "./tmp/cover.out"); err != nil {
		return err
	}
	fmt.Println("Test done.")
	return nil
}

// Bench runs the sampling benchmarks of the noise packages.
func Bench() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./mods/...")
}

func Package() error {
	target := "noiz"
	mg.Deps(CleanPackage, Build)

	bdir := fmt.Sprintf("%s-%s-%s-%s", target, vBuildVersion, runtime.GOOS, runtime.GOARCH)
	if err := os.MkdirAll(filepath.Join("packages", bdir), 0755); err != nil {
		return err
	}
	exe := target
	if runtime.GOOS == "windows" {
		exe += ".exe"
	}
	if err := os.Rename(filepath.Join("tmp", exe), filepath.Join("packages", bdir, exe)); err != nil {
		return err
	}
	if err := archivePackage(filepath.Join("packages", bdir+".zip"), filepath.Join("packages", bdir)); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join("packages", bdir))
}

func archivePackage(dst string, src ...string) error {
	archive, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer archive.Close()
	zipWriter := zip.NewWriter(archive)

	for _, file := range src {
		if err := archiveAddEntry(zipWriter, file, "packages"+string(os.PathSeparator)); err != nil {
			return err
		}
	}
	return zipWriter.Close()
}

func archiveAddEntry(zipWriter *zip.Writer, entry string, prefix string) error {
	stat, err := os.Stat(entry)
	if err != nil {
		return err
	}
	if stat.IsDir() {
		entries, err := os.ReadDir(entry)
		if err != nil {
			return err
		}
		for _, ent := range entries {
			if err := archiveAddEntry(zipWriter, filepath.Join(entry, ent.Name()), prefix); err != nil {
				return err
			}
		}
		return nil
	}
	fd, err := os.Open(entry)
	if err != nil {
		return err
	}
	defer fd.Close()

	entryName := strings.TrimPrefix(entry, prefix)
	fmt.Println("Archive", entryName)
	w, err := zipWriter.Create(entryName)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, fd)
	return err
}

func CleanPackage() error {
	entries, err := os.ReadDir("./packages")
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	for _, ent := range entries {
		if err = os.RemoveAll(filepath.Join("./packages", ent.Name())); err != nil {
			return err
		}
	}
	return nil
}

// GetVersion derives the build version from the newest tag. Commits after
// the tag build as a snapshot of the next patch release, a repository
// without tags builds v0.0.1-snapshot.
func GetVersion() error {
	repo, err := git.PlainOpen(".")
	if err != nil {
		return err
	}
	headRef, err := repo.Head()
	if err != nil {
		return err
	}
	commit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return err
	}
	vLastCommit = commit.Hash.String()

	var lastTag *object.Tag
	var lastTagCommit *object.Commit
	tagiter, err := repo.TagObjects()
	if err != nil {
		return err
	}
	err = tagiter.ForEach(func(tag *object.Tag) error {
		tagCommit, err := tag.Commit()
		if err != nil {
			return err
		}
		if lastTag == nil || tagCommit.Committer.When.After(lastTagCommit.Committer.When) {
			lastTag, lastTagCommit = tag, tagCommit
		}
		return nil
	})
	if err != nil {
		return err
	}

	if lastTag == nil {
		vBuildVersion = "v0.0.1-snapshot"
		return nil
	}
	lastVer, err := semver.NewVersion(lastTag.Name)
	if err != nil {
		return err
	}
	if lastTagCommit.Hash.String() != vLastCommit {
		vBuildVersion = fmt.Sprintf("v%d.%d.%d-snapshot", lastVer.Major(), lastVer.Minor(), lastVer.Patch()+1)
	} else {
		vBuildVersion = fmt.Sprintf("v%d.%d.%d", lastVer.Major(), lastVer.Minor(), lastVer.Patch())
	}
	return nil
}
