package model

// Package model defines domain data structures used across the app: the video
// view model presented to the UI, download jobs, and the job status state
// machine. Structures are designed for direct binding in the UI and explicit
// state transitions.
