package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // 이메일 중복

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // 접근 권한 없음
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"  // 작업 권한 없음
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // 권한 정보 없음
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // 관리자만 가능
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // 소유자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // 잘못된 입력
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // 잘못된 ID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // 잘못된 형식
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // 범위 초과
	ValidationRequired      = "VALIDATION_REQUIRED"       // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"       // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"  // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"        // 충돌

	// ==================== 매물 (PROPERTY_) ====================
	PropertyNotFound       = "PROPERTY_NOT_FOUND"       // 매물 없음
	PropertyInvalidType    = "PROPERTY_INVALID_TYPE"    // 잘못된 매물 유형
	PropertyInvalidStatus  = "PROPERTY_INVALID_STATUS"  // 잘못된 매물 상태
	PropertyInvalidRental  = "PROPERTY_INVALID_RENTAL"  // 잘못된 임대 유형
	PropertyNoCoordinate   = "PROPERTY_NO_COORDINATE"   // 좌표 없음

	// ==================== 이미지 (IMAGE_) ====================
	ImageNotFound     = "IMAGE_NOT_FOUND"     // 이미지 없음
	ImageInvalidOrder = "IMAGE_INVALID_ORDER" // 잘못된 이미지 순서

	// ==================== 찜 (BOOKMARK_) ====================
	BookmarkNotFound      = "BOOKMARK_NOT_FOUND"       // 찜 없음
	BookmarkAlreadyExists = "BOOKMARK_ALREADY_EXISTS"  // 이미 찜함

	// ==================== 검색 (SEARCH_) ====================
	SearchAddressNotFound = "SEARCH_ADDRESS_NOT_FOUND" // 주소를 찾을 수 없음
	SearchInvalidRadius   = "SEARCH_INVALID_RADIUS"    // 잘못된 반경
	SearchFailed          = "SEARCH_FAILED"            // 장소 검색 실패

	// ==================== 업로드 (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // 잘못된 파일 형식
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // 파일 너무 큼
	UploadFailed          = "UPLOAD_FAILED"            // 업로드 실패

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // 외부 API 오류
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // 설정 오류
)
