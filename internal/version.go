package internal

// Version is the current vocabbuilder release.
const Version = "0.4.0"
