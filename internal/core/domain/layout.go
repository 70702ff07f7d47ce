package domain

import "path/filepath"

const (
	// RegistryFileName is the marker file listing the project's contracts.
	RegistryFileName = "Odra.toml"

	// ManifestFileName is the name of a cargo build manifest.
	ManifestFileName = "Cargo.toml"

	// LibFileName is the crate root source file that registers modules.
	LibFileName = "lib.rs"

	// ModFileName is the source file that registers submodules of a directory module.
	ModFileName = "mod.rs"

	// SrcDirName is the name of a crate's source directory.
	SrcDirName = "src"

	// WasmDirName is the name of the directory holding placed wasm artifacts.
	WasmDirName = "wasm"

	// TargetDirName is the name of cargo's output directory.
	TargetDirName = "target"

	// BuilderDirPrefix prefixes every backend working directory.
	BuilderDirPrefix = ".builder_"

	// WasmTarget is the rustc target contracts are compiled for.
	WasmTarget = "wasm32-unknown-unknown"

	// FrameworkCrate is the crate name of the odra framework.
	FrameworkCrate = "odra"

	// BuilderPackageName is the package name of every synthesized builder manifest.
	BuilderPackageName = "builder"

	// BuilderPackageVersion is the package version of every synthesized builder manifest.
	BuilderPackageVersion = "1.0.0"

	// Edition is the rust edition used by the builder crate.
	Edition = "2021"

	// BackendEnvVar passes the active backend to spawned toolchain processes.
	BackendEnvVar = "ODRA_BACKEND"

	// ModuleEnvVar passes the active contract to spawned toolchain processes.
	ModuleEnvVar = "ODRA_MODULE"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// WasmDir returns the directory holding placed wasm artifacts under root.
func WasmDir(root string) string {
	return filepath.Join(root, WasmDirName)
}

// WasmFileName returns the artifact file name for a contract struct.
func WasmFileName(structName string) string {
	return structName + ".wasm"
}

// BuilderPaths computes the paths of a backend working directory.
// Nothing is stored on disk; every path is derived from the backend and project root.
type BuilderPaths struct {
	Backend     string
	ProjectRoot string
}

// NewBuilderPaths returns the paths for backend under projectRoot.
func NewBuilderPaths(backend, projectRoot string) BuilderPaths {
	return BuilderPaths{Backend: backend, ProjectRoot: projectRoot}
}

// Root returns the builder directory, e.g. <root>/.builder_casper.
func (p BuilderPaths) Root() string {
	return filepath.Join(p.ProjectRoot, BuilderDirPrefix+p.Backend)
}

// Src returns the builder's source directory.
func (p BuilderPaths) Src() string {
	return filepath.Join(p.Root(), SrcDirName)
}

// Manifest returns the builder's Cargo.toml.
func (p BuilderPaths) Manifest() string {
	return filepath.Join(p.Root(), ManifestFileName)
}

// CodegenSource returns the absolute path of a contract's codegen stub.
func (p BuilderPaths) CodegenSource(structName string) string {
	return filepath.Join(p.Root(), filepath.FromSlash(RelativeCodegenSource(structName)))
}

// WasmSource returns the absolute path of a contract's generated wasm-ready source.
func (p BuilderPaths) WasmSource(structName string) string {
	return filepath.Join(p.Root(), filepath.FromSlash(RelativeWasmSource(structName)))
}

// TargetDir returns the builder's isolated cargo target directory.
func (p BuilderPaths) TargetDir() string {
	return filepath.Join(p.Root(), TargetDirName)
}

// CompiledArtifact returns where cargo leaves the release wasm binary of a contract.
func (p BuilderPaths) CompiledArtifact(structName string) string {
	return filepath.Join(p.TargetDir(), WasmTarget, "release", WasmFileName(structName))
}

// CodegenBin returns the name of the binary that emits a contract's wasm-ready source.
func CodegenBin(structName string) string {
	return structName + "_build"
}

// RelativeCodegenSource returns the codegen stub path relative to the builder root.
// Manifest paths always use forward slashes.
func RelativeCodegenSource(structName string) string {
	return SrcDirName + "/" + structName + "_build.rs"
}

// RelativeWasmSource returns the wasm-ready source path relative to the builder root.
func RelativeWasmSource(structName string) string {
	return SrcDirName + "/" + structName + "_wasm.rs"
}
