package ui

// Package ui contains the Fyne desktop interface: the URL search bar, the video
// preview card, one card per downloadable stream and the progress dialog. It
// renders download.Session snapshots and forwards user actions to the session.
// All UI strings are localized via Localization.
