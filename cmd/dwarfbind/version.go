package main

// Version is dwarfbind's release version, surfaced by --version. Mirrors
// the reference implementation's parser.py VERSION constant, which
// --version prints and test_cmdline.py asserts against (spec §6, §7
// supplemented feature).
const Version = "0.1.0"
