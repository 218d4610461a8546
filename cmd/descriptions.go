package cmd

const rootLongDescription = `Tangle deliberately breaks a dependency manifest (package.json) for
interview and practice exercises: it randomly perturbs version specifiers
into ones that are still syntactically valid but statistically likely to
produce real resolution conflicts.

The damage is controlled by three knobs:
  --percentage   how many entries per category are touched
  --aggression   how hard each touched specifier is perturbed (1-10)
  --mode         simple, realistic (transitive and sibling-family
                 conflicts) or peer-conflict (peer vs regular mismatches)

A backup of the original manifest is written next to it before anything
changes; use "tangle restore" to undo a run.

Examples:
  tangle                        scramble ./package.json with defaults
  tangle -p 100 -a 10 -m realistic fixtures/package.json
  tangle -c react=^17.0.0 --respect-major package.json`

const restoreLongDescription = `Restore copies a backup created by a scramble run byte-for-byte onto the
target manifest. When no target is given, the conventional manifest name
next to the backup is used.

Examples:
  tangle restore package.json.backup.1724567890123456789
  tangle restore package.json.backup.1724567890123456789 other/package.json`
