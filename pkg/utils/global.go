package utils

// BatchLength is the default number of tracked frames handed from the tracker to the tagger at once
const BatchLength = 16

// MinTrainingPlayers is the default number of in-court players a frame needs before team colors are learned from it
const MinTrainingPlayers = 6

// Ballclass is the enum represents an object detected as a ball
const BallClass = 0

// Hoopclass is the enum represents an object detected as a hoop
const HoopClass = 1

// Refereeclass is the enum represents an object detected as a referee
const RefereeClass = 2

// DontPlotFlag is a flag that marks we do not want to plot it's object bounding box on certain frame
const DontPlotFlag = -1

// SummaryExtension is appended to a tagged video's name for its teams summary file
const SummaryExtension = ".teams.json"
