package constant

// VideoExtensions lists the file extensions offered when completing video paths.
var VideoExtensions = []string{"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "m4a", "mp3", "wav"}

// TranscriptExtensions lists the file extensions offered when completing transcript paths.
var TranscriptExtensions = []string{"txt"}
