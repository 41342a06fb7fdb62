package bridge

// AppleScript programs sent to osascript. Each one walks the relevant
// Things 3 collection and prints a JSON document on stdout, so the Go side
// only ever deals with encoding/json. The esc handler keeps titles and notes
// containing quotes, backslashes, or newlines from breaking the document.

const scriptHeader = `on esc(t)
	set r to ""
	repeat with c in characters of t
		set ch to c as text
		if ch is "\"" or ch is "\\" then
			set r to r & "\\" & ch
		else if ch is linefeed or ch is return then
			set r to r & "\\n"
		else
			set r to r & ch
		end if
	end repeat
	return r
end esc

`

// pingScript reports whether the Things 3 process exists. Output is the
// literal word "true" or "false".
const pingScript = `tell application "System Events" to return exists process "Things3"`

// areasScript lists every area as {"id":..., "name":...}.
const areasScript = scriptHeader + `tell application "Things3"
	set out to "["
	set allAreas to areas
	set n to count of allAreas
	set i to 1
	repeat with theArea in allAreas
		set out to out & "{\"id\":\"" & my esc(id of theArea) & "\",\"name\":\"" & my esc(name of theArea) & "\"}"
		if i < n then set out to out & ","
		set i to i + 1
	end repeat
	return out & "]"
end tell`

// projectsScript lists every project with notes, status, and owning area.
const projectsScript = scriptHeader + `tell application "Things3"
	set out to "["
	set allProjects to projects
	set n to count of allProjects
	set i to 1
	repeat with theProject in allProjects
		set out to out & "{\"id\":\"" & my esc(id of theProject) & "\""
		set out to out & ",\"name\":\"" & my esc(name of theProject) & "\""
		set out to out & ",\"notes\":\"" & my esc(notes of theProject) & "\""
		if status of theProject is completed then
			set out to out & ",\"status\":\"completed\""
		else if status of theProject is canceled then
			set out to out & ",\"status\":\"canceled\""
		else
			set out to out & ",\"status\":\"open\""
		end if
		try
			set theArea to area of theProject
			if theArea is not missing value then
				set out to out & ",\"area\":\"" & my esc(id of theArea) & "\""
			end if
		end try
		set out to out & "}"
		if i < n then set out to out & ","
		set i to i + 1
	end repeat
	return out & "]"
end tell`

// todosScript lists every to-do with its tags, checklist items, deadline,
// recurrence phrase, and parent project or area.
const todosScript = scriptHeader + `tell application "Things3"
	set out to "["
	set allToDos to to dos
	set n to count of allToDos
	set i to 1
	repeat with theToDo in allToDos
		set out to out & "{\"id\":\"" & my esc(id of theToDo) & "\""
		set out to out & ",\"title\":\"" & my esc(name of theToDo) & "\""
		set out to out & ",\"notes\":\"" & my esc(notes of theToDo) & "\""
		if status of theToDo is completed then
			set out to out & ",\"status\":\"completed\""
		else if status of theToDo is canceled then
			set out to out & ",\"status\":\"canceled\""
		else
			set out to out & ",\"status\":\"open\""
		end if
		try
			set dueDate to deadline of theToDo
			if dueDate is not missing value then
				set out to out & ",\"due_date\":\"" & my esc(dueDate as text) & "\""
			end if
		end try
		try
			if recurring of theToDo is true then
				set out to out & ",\"recurrence\":\"" & my esc(recurrence of theToDo) & "\""
			end if
		end try
		try
			set theProject to project of theToDo
			if theProject is not missing value then
				set out to out & ",\"project\":\"" & my esc(id of theProject) & "\""
			end if
		end try
		try
			set theArea to area of theToDo
			if theArea is not missing value then
				set out to out & ",\"area\":\"" & my esc(id of theArea) & "\""
			end if
		end try
		set out to out & ",\"tags\":["
		set tagNames to {}
		try
			repeat with theTag in tags of theToDo
				set end of tagNames to "\"" & my esc(name of theTag) & "\""
			end repeat
		end try
		set AppleScript's text item delimiters to ","
		set out to out & (tagNames as text) & "]"
		set AppleScript's text item delimiters to ""
		set out to out & ",\"checklist\":["
		set checkParts to {}
		try
			repeat with checkItem in checklist items of theToDo
				set itemJSON to "{\"title\":\"" & my esc(name of checkItem) & "\""
				if status of checkItem is completed then
					set itemJSON to itemJSON & ",\"status\":\"completed\"}"
				else
					set itemJSON to itemJSON & ",\"status\":\"open\"}"
				end if
				set end of checkParts to itemJSON
			end repeat
		end try
		set AppleScript's text item delimiters to ","
		set out to out & (checkParts as text) & "]"
		set AppleScript's text item delimiters to ""
		set out to out & "}"
		if i < n then set out to out & ","
		set i to i + 1
	end repeat
	return out & "]"
end tell`
