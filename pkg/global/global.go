package global

var (
	Version   = "0.0.1"
	BuildTime = "none"
	Verbose   = false

	// ConfigFilename is the project configuration file searched for upwards
	// from the working directory.
	ConfigFilename = "gothainer.yaml"

	// BuildArtifactsFolder holds per-build temporary directories (rendered
	// Dockerfiles, staged build contexts) below the project directory.
	BuildArtifactsFolder = ".gothainer"
)
