package envvar

const (
	// ModelprobeEnv is the environment variable used to determine the environment
	ModelprobeEnv = "MODELPROBE_ENV"

	// ModelprobeModelsPath overrides the models cache directory
	ModelprobeModelsPath = "MODELPROBE_MODELS_PATH"

	// ModelprobeOrtLibrary overrides the ONNX Runtime shared library path
	ModelprobeOrtLibrary = "MODELPROBE_ORT_LIBRARY"

	// ModelprobeListenAddr overrides the status server listen address in watch mode
	ModelprobeListenAddr = "MODELPROBE_LISTEN_ADDR"
)
