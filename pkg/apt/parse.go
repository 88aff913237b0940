package apt

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// noneVersion is what apt-cache policy prints for an absent version.
const noneVersion = "(none)"

// parsePolicy parses `apt-cache policy <name>` output.
func parsePolicy(name, output string) *Policy {
	pol := &Policy{Name: name}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "Installed:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Installed:")); v != noneVersion {
				pol.Installed = v
			}
		case strings.HasPrefix(line, "Candidate:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Candidate:")); v != noneVersion {
				pol.Candidate = v
			}
		}
	}

	return pol
}

// parseRecords splits `apt-cache show` output into records. Records are
// separated by blank lines; description bodies are indented continuations.
func parseRecords(output string) []Record {
	var records []Record
	var cur *Record
	var descLines []string
	inDesc := false

	flush := func() {
		if cur == nil {
			return
		}
		if len(descLines) > 0 {
			cur.Description += "\n" + strings.Join(descLines, "\n")
		}
		records = append(records, *cur)
		cur = nil
		descLines = nil
		inDesc = false
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if strings.HasPrefix(line, " ") {
			if inDesc && cur != nil {
				descLines = append(descLines, strings.TrimSpace(line))
			}
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if cur == nil {
			cur = &Record{}
		}
		inDesc = false

		switch key {
		case "Package":
			cur.Name = value
		case "Version":
			cur.Version = value
		case "Architecture":
			cur.Architecture = value
		case "Priority":
			cur.Priority = value
		case "Section":
			cur.Section = value
		case "Source":
			cur.Source = value
		case "Origin":
			cur.Origin = value
		case "Maintainer":
			cur.Maintainer = value
		case "Installed-Size":
			cur.InstalledSize = value
		case "Size":
			cur.DownloadSize = value
		case "Homepage":
			cur.Homepage = value
		case "Description", "Description-en":
			cur.Description = value
			inDesc = true
		case "Depends":
			cur.Depends = splitDepList(value)
		case "Pre-Depends":
			cur.Depends = append(cur.Depends, splitDepList(value)...)
		case "Recommends":
			cur.Recommends = splitDepList(value)
		case "Suggests":
			cur.Suggests = splitDepList(value)
		case "Conflicts":
			cur.Conflicts = splitDepList(value)
		case "Breaks":
			cur.Breaks = splitDepList(value)
		case "Replaces":
			cur.Replaces = splitDepList(value)
		case "Provides":
			cur.Provides = splitDepList(value)
		}
	}
	flush()

	return records
}

// splitDepList splits a comma-separated dependency field, keeping version
// constraints attached to their package.
func splitDepList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDump parses `apt-cache search .` output: one "name - description"
// line per known package.
func parseDump(output string) []Package {
	var pkgs []Package
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		name, desc, ok := strings.Cut(scanner.Text(), " - ")
		if !ok {
			continue
		}
		pkgs = append(pkgs, Package{
			Name:        strings.TrimSpace(name),
			Description: strings.TrimSpace(desc),
		})
	}
	return pkgs
}

// parseInstalledTable parses dpkg-query tab-separated output produced with
// the format ${Package}\t${Architecture}\t${Version}\t${Status}.
func parseInstalledTable(output string) []Package {
	var pkgs []Package
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 4 || !strings.Contains(fields[3], "installed") {
			continue
		}
		pkgs = append(pkgs, Package{
			Name:         fields[0],
			Architecture: fields[1],
			Installed:    fields[2],
		})
	}
	return pkgs
}

// parseReverseProvides parses the "Reverse Provides:" section of
// `apt-cache showpkg <name>` output.
func parseReverseProvides(output string) []string {
	var providers []string
	seen := map[string]bool{}
	in := false
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Reverse Provides:") {
			in = true
			continue
		}
		if !in {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			break
		}
		if !seen[fields[0]] {
			seen[fields[0]] = true
			providers = append(providers, fields[0])
		}
	}
	return providers
}

// Simulation output markers.
var (
	// "Inst tzdata [2023c-1] (2023c-2 Debian:12.1/stable [all])"
	instLineRe = regexp.MustCompile(`^Inst (\S+)(?: \[([^\]]+)\])? \((\S+)`)
	// "Remv cruft [1.0-1]"
	remvLineRe = regexp.MustCompile(`^Remv (\S+)(?: \[([^\]]+)\])?`)
	// "tzdata is already the newest version (2023c-2)."
	newestLineRe = regexp.MustCompile(`^(\S+) is already the newest version`)
	// "3 upgraded, 1 newly installed, 0 to remove and 2 not upgraded."
	summaryLineRe = regexp.MustCompile(`^(\d+) upgraded, (\d+) newly installed, (\d+) to remove and (\d+) not upgraded\.`)
	// "Need to get 45.6 MB of archives."
	downloadLineRe = regexp.MustCompile(`Need to get ([\d.,]+ [kMG]?B)`)
	// "After this operation, 123 MB of additional disk space will be used."
	spaceUsedRe  = regexp.MustCompile(`After this operation, ([\d.,]+ [kMG]?B) of additional disk space will be used`)
	spaceFreedRe = regexp.MustCompile(`After this operation, ([\d.,]+ [kMG]?B) disk space will be freed`)

	keptBackHeader = "The following packages have been kept back:"
)

// parseChangeset turns a successful simulation run into a Changeset.
func parseChangeset(output string) *Changeset {
	cs := &Changeset{}
	inKeptBack := false

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, keptBackHeader) {
			inKeptBack = true
			continue
		}
		if inKeptBack {
			if strings.HasPrefix(line, " ") {
				cs.Held = append(cs.Held, strings.Fields(line)...)
				continue
			}
			inKeptBack = false
		}

		if m := instLineRe.FindStringSubmatch(line); m != nil {
			ch := Change{Name: m[1], Current: m[2], Target: m[3]}
			switch {
			case ch.Current == "":
				ch.Kind = KindInstall
				cs.Install = append(cs.Install, ch)
			case dpkgVersionLess(ch.Target, ch.Current):
				ch.Kind = KindDowngrade
				cs.Downgrade = append(cs.Downgrade, ch)
			default:
				ch.Kind = KindUpgrade
				cs.Upgrade = append(cs.Upgrade, ch)
			}
			continue
		}

		if m := remvLineRe.FindStringSubmatch(line); m != nil {
			cs.Remove = append(cs.Remove, Change{
				Name: m[1], Kind: KindRemove, Current: m[2],
			})
			continue
		}

		if m := newestLineRe.FindStringSubmatch(line); m != nil {
			cs.AlreadyNewest = append(cs.AlreadyNewest, m[1])
			continue
		}

		if m := summaryLineRe.FindStringSubmatch(line); m != nil {
			cs.Upgraded, _ = strconv.Atoi(m[1])
			cs.NewInstalled, _ = strconv.Atoi(m[2])
			cs.Removed, _ = strconv.Atoi(m[3])
			cs.NotUpgraded, _ = strconv.Atoi(m[4])
			continue
		}

		if m := downloadLineRe.FindStringSubmatch(line); m != nil {
			cs.DownloadSize = m[1]
			continue
		}
		if m := spaceUsedRe.FindStringSubmatch(line); m != nil {
			cs.SpaceChange = "+" + m[1]
			continue
		}
		if m := spaceFreedRe.FindStringSubmatch(line); m != nil {
			cs.SpaceChange = "-" + m[1]
		}
	}

	return cs
}

// dpkgVersionLess is a rough ordering used only to tell a downgrade from an
// upgrade in simulation output. The engine has already decided the actual
// direction; epochs dominate, otherwise the comparison is lexical per
// numeric/non-numeric segment.
func dpkgVersionLess(a, b string) bool {
	ea, ra := splitEpoch(a)
	eb, rb := splitEpoch(b)
	if ea != eb {
		return ea < eb
	}
	sa, sb := versionSegments(ra), versionSegments(rb)
	for i := 0; i < len(sa) && i < len(sb); i++ {
		if sa[i] == sb[i] {
			continue
		}
		na, errA := strconv.Atoi(sa[i])
		nb, errB := strconv.Atoi(sb[i])
		if errA == nil && errB == nil {
			return na < nb
		}
		return sa[i] < sb[i]
	}
	return len(sa) < len(sb)
}

func splitEpoch(v string) (int, string) {
	if i := strings.IndexByte(v, ':'); i > 0 {
		if e, err := strconv.Atoi(v[:i]); err == nil {
			return e, v[i+1:]
		}
	}
	return 0, v
}

func versionSegments(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-' || r == '+' || r == '~'
	})
}
