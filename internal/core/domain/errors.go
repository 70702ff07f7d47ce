package domain

import "go.trai.ch/zerr"

// Error kinds. Every error surfaced to the CLI is tagged with exactly one of
// these so it can be mapped to a stable exit code.
var (
	// ErrConfigMissing is returned when no Odra.toml is found walking upward from the start directory.
	ErrConfigMissing = zerr.New("not an odra project")

	// ErrConfigMalformed is returned when a manifest or registry file cannot be read or understood.
	ErrConfigMalformed = zerr.New("project configuration is malformed")

	// ErrContractNotFound is returned when a requested contract is not present in the registry.
	ErrContractNotFound = zerr.New("contract not found")

	// ErrToolingMissing is returned when a required toolchain component cannot be used.
	ErrToolingMissing = zerr.New("required tooling is missing")

	// ErrNetworkFailure is returned when a remote resource could not be retrieved.
	ErrNetworkFailure = zerr.New("network request failed")

	// ErrParseFailure is returned when a remote resource was retrieved but could not be decoded.
	ErrParseFailure = zerr.New("failed to decode response")

	// ErrCommandFailed is returned when an external process exits with a non-zero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrArgumentInvalid is returned for malformed command line input.
	ErrArgumentInvalid = zerr.New("invalid argument")
)

var (
	// ErrRegistryNotFound is returned when the walk reaches the filesystem root without finding Odra.toml.
	ErrRegistryNotFound = zerr.New("this command can be executed only in a folder with an odra project")

	// ErrManifestUnreadable is returned when a Cargo.toml cannot be read or parsed.
	ErrManifestUnreadable = zerr.New("failed to read Cargo.toml")

	// ErrMemberManifestMissing is returned when a declared workspace member has no Cargo.toml.
	ErrMemberManifestMissing = zerr.New("workspace member has no Cargo.toml")

	// ErrRegistryUnreadable is returned when Odra.toml cannot be read or parsed.
	ErrRegistryUnreadable = zerr.New("failed to read Odra.toml")

	// ErrRegistryWriteFailed is returned when Odra.toml cannot be written.
	ErrRegistryWriteFailed = zerr.New("failed to write Odra.toml")

	// ErrInvalidFQN is returned when a contract name does not have the form crate::...::Struct.
	ErrInvalidFQN = zerr.New("contract fully-qualified name must have the form crate::module::Struct")

	// ErrFrameworkDependencyMissing is returned when no odra dependency is declared in the manifests.
	ErrFrameworkDependencyMissing = zerr.New("odra dependency is not declared in Cargo.toml")

	// ErrFrameworkDependencyInvalid is returned when the odra dependency entry has no usable source.
	ErrFrameworkDependencyInvalid = zerr.New("odra dependency has no path, git or version")

	// ErrWasmTargetMissing is returned when the wasm32 target is not installed.
	ErrWasmTargetMissing = zerr.New(
		"wasm32-unknown-unknown target is not present, install it by executing:\n" +
			"rustup target add wasm32-unknown-unknown",
	)

	// ErrWasmStripMissing is returned when wasm-strip could not be started.
	ErrWasmStripMissing = zerr.New("there was an error while running wasm-strip - is it installed?")

	// ErrCommandStart is returned when an external process could not be started at all.
	ErrCommandStart = zerr.New("failed to start command")

	// ErrInvalidFilter is returned when the contract filter contains whitespace other than spaces.
	ErrInvalidFilter = zerr.New("contract filter contains non-space whitespace characters")

	// ErrInvalidBackend is returned when a backend name is empty or contains unsupported characters.
	ErrInvalidBackend = zerr.New("backend name can only contain lowercase letters, digits, hyphens and underscores")

	// ErrBuilderNotFound is returned when updating a backend that was never built.
	ErrBuilderNotFound = zerr.New("builder directory does not exist, run build first")

	// ErrDirectoryNotEmpty is returned when init runs in a non-empty directory.
	ErrDirectoryNotEmpty = zerr.New("current directory is not empty")

	// ErrDirectoryExists is returned when new would overwrite an existing directory.
	ErrDirectoryExists = zerr.New("destination directory already exists")

	// ErrInvalidContractName is returned when a generated contract name yields an empty identifier.
	ErrInvalidContractName = zerr.New("contract name must contain at least one letter")

	// ErrContractFileExists is returned when generate would overwrite a source file.
	ErrContractFileExists = zerr.New("contract source file already exists")

	// ErrContractAlreadyRegistered is returned when a contract is already listed in Odra.toml.
	ErrContractAlreadyRegistered = zerr.New("contract is already registered in Odra.toml")

	// ErrDuplicateStructName is returned when two contracts share a struct name.
	ErrDuplicateStructName = zerr.New("contracts must have unique struct names, wasm files and builder binaries are named after them")

	// ErrTemplateFetchFailed is returned when a template could not be retrieved.
	ErrTemplateFetchFailed = zerr.New("failed to fetch template")

	// ErrTemplateNotText is returned when a fetched template body is not valid UTF-8 text.
	ErrTemplateNotText = zerr.New("template body is not valid text")

	// ErrTemplateRenderFailed is returned when a template cannot be parsed or executed.
	ErrTemplateRenderFailed = zerr.New("failed to render template")

	// ErrReleaseLookupFailed is returned when the latest framework release cannot be queried.
	ErrReleaseLookupFailed = zerr.New("failed to query latest odra release")

	// ErrReleaseParseFailed is returned when the latest release response cannot be decoded.
	ErrReleaseParseFailed = zerr.New("failed to parse latest odra release")

	// ErrInvalidSettings is returned when tool settings fail validation.
	ErrInvalidSettings = zerr.New("invalid cargo-odra settings")
)
